package model

// ConsolidatedEntity is one agreed entity after merging candidates from
// all extractors. Mentions hold one canonical surface form per normalized
// mention key, ordered by first appearance. Support counts the distinct
// extractors that contributed at least one member candidate.
type ConsolidatedEntity struct {
	Mentions []string `json:"mentions"`
	Type     string   `json:"type"`
	Support  int      `json:"support"`
}

// Canonical returns the entity's representative surface form.
func (e ConsolidatedEntity) Canonical() string {
	if len(e.Mentions) == 0 {
		return ""
	}
	return e.Mentions[0]
}

// ConsolidatedTriple is one agreed relation. Head and Tail index into the
// owning DocumentResult's entity list; the reference is for lookup only,
// the entities belong to the DocumentResult.
type ConsolidatedTriple struct {
	Head     int    `json:"head"`
	Relation string `json:"relation"`
	Tail     int    `json:"tail"`
	Support  int    `json:"support"`
}

// DocumentResult is the consolidated output for one document. It is
// created fresh per document, populated by the entity and triple passes,
// then treated as immutable.
type DocumentResult struct {
	DocID    string               `json:"doc_id"`
	Title    string               `json:"title"`
	Domain   string               `json:"domain,omitempty"`
	Entities []ConsolidatedEntity `json:"entities"`
	Triples  []ConsolidatedTriple `json:"triples"`
}

// HeadEntity resolves a triple's head reference within this result.
func (r *DocumentResult) HeadEntity(t ConsolidatedTriple) ConsolidatedEntity {
	return r.Entities[t.Head]
}

// TailEntity resolves a triple's tail reference within this result.
func (r *DocumentResult) TailEntity(t ConsolidatedTriple) ConsolidatedEntity {
	return r.Entities[t.Tail]
}
