// Package consolidate reconciles the outputs of several independent
// extractors for one document. Entities are deduplicated first; triples
// are then voted on under the constraint that both endpoints resolve to a
// consolidated entity. That ordering is load-bearing: voting on triples
// before (or without) the entity filter produces different results.
package consolidate

import (
	"strings"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// Document reduces one document's extractor outputs to a DocumentResult.
// It is pure: it reads only its arguments, mutates no shared state,
// performs no I/O, and never fails. Recoverable conditions are counted in
// the returned Diagnostics. Documents can therefore be consolidated in
// parallel with no locking.
func Document(docID string, inputs map[string]model.ExtractorDocument, opts Options) (model.DocumentResult, model.Diagnostics) {
	opts = opts.withDefaults()
	norm := NewNormalizer()

	entityCands := make(map[string][]model.EntityCandidate, len(inputs))
	tripleCands := make(map[string][]model.TripleCandidate, len(inputs))

	// Metadata passthrough: first non-empty value in extractor-id order.
	var title, domain string
	for _, id := range sortedKeys(inputs) {
		doc := inputs[id]
		if title == "" {
			title = strings.TrimSpace(doc.Title)
		}
		if domain == "" {
			domain = strings.TrimSpace(doc.Domain)
		}
		entityCands[id] = doc.Entities
		tripleCands[id] = doc.Triples
	}

	entities, entStats := consolidateEntities(norm, entityCands, opts)
	triples, triStats := consolidateTriples(norm, tripleCands, entities, opts)

	result := model.DocumentResult{
		DocID:    docID,
		Title:    title,
		Domain:   domain,
		Entities: entities,
		Triples:  triples,
	}
	diag := model.Diagnostics{
		Extractors:            len(inputs),
		MalformedEntities:     entStats.Malformed,
		MalformedTriples:      triStats.Malformed,
		UnresolvedTriples:     triStats.Unresolved,
		EntitiesBelowMinVotes: entStats.BelowMinVotes,
		TriplesBelowMinVotes:  triStats.BelowMinVotes,
	}
	return result, diag
}
