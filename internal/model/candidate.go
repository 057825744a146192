package model

// EntityCandidate is a single extractor's proposed entity for a document.
// Mentions are surface forms in the order the extractor emitted them.
// Candidates are immutable once received; consolidation never edits them.
type EntityCandidate struct {
	Mentions []string `json:"mentions"`
	Type     string   `json:"type"`
}

// TripleCandidate is a single extractor's proposed relation between two
// entity surface strings. Head and tail reference surfaces, not entity
// identities; resolution against the consolidated entity set happens later.
type TripleCandidate struct {
	Head     string `json:"head"`
	Relation string `json:"relation"`
	Tail     string `json:"tail"`
}

// ExtractorDocument is the per-document block of one extractor's results file.
type ExtractorDocument struct {
	Title    string            `json:"title"`
	Domain   string            `json:"domain,omitempty"`
	Entities []EntityCandidate `json:"entities"`
	Triples  []TripleCandidate `json:"triples"`
}

// ExtractorOutput is one extractor's full results file, keyed by document id.
type ExtractorOutput map[string]ExtractorDocument
