package model

// Diagnostics counts the conditions a document's consolidation recovered
// from locally. None of these abort a document; they exist so callers can
// observe how much input was discarded.
type Diagnostics struct {
	Extractors            int `json:"extractors"`
	MalformedEntities     int `json:"malformed_entities"`
	MalformedTriples      int `json:"malformed_triples"`
	UnresolvedTriples     int `json:"unresolved_triples"`
	EntitiesBelowMinVotes int `json:"entities_below_min_votes"`
	TriplesBelowMinVotes  int `json:"triples_below_min_votes"`
}

// Merge accumulates another document's diagnostics into d. Extractors
// takes the maximum since documents in one corpus share the extractor set.
func (d *Diagnostics) Merge(o Diagnostics) {
	if o.Extractors > d.Extractors {
		d.Extractors = o.Extractors
	}
	d.MalformedEntities += o.MalformedEntities
	d.MalformedTriples += o.MalformedTriples
	d.UnresolvedTriples += o.UnresolvedTriples
	d.EntitiesBelowMinVotes += o.EntitiesBelowMinVotes
	d.TriplesBelowMinVotes += o.TriplesBelowMinVotes
}
