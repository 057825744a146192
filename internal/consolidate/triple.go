package consolidate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// TripleStats reports the conditions triple consolidation recovered from.
type TripleStats struct {
	Malformed     int
	Unresolved    int
	BelowMinVotes int
}

// tripleKey identifies a candidate triple after endpoint resolution: both
// endpoints as entity indices plus the normalized relation label.
type tripleKey struct {
	head int
	rel  string
	tail int
}

// tripleAccum collects votes for one triple key.
type tripleAccum struct {
	key      tripleKey
	relation string
	voters   map[string]struct{}
	first    int
}

// Triples merges every extractor's triple candidates for one document,
// constrained to the consolidated entity set: a triple whose head or tail
// matches no consolidated mention is dropped before voting, so
// hallucinated entities cannot reach the relation layer. Retained triples
// carry distinct-extractor support and are ordered by descending support,
// then first appearance.
func Triples(byExtractor map[string][]model.TripleCandidate, entities []model.ConsolidatedEntity, opts Options) ([]model.ConsolidatedTriple, TripleStats) {
	return consolidateTriples(NewNormalizer(), byExtractor, entities, opts.withDefaults())
}

func consolidateTriples(norm *Normalizer, byExtractor map[string][]model.TripleCandidate, entities []model.ConsolidatedEntity, opts Options) ([]model.ConsolidatedTriple, TripleStats) {
	var stats TripleStats

	// Endpoint lookup over the consolidated mention set. The partition
	// invariant guarantees each key belongs to exactly one entity.
	lookup := make(map[string]int)
	for i, e := range entities {
		for _, mention := range e.Mentions {
			lookup[norm.Key(mention)] = i
		}
	}

	accums := make(map[tripleKey]*tripleAccum)
	var order []*tripleAccum
	for _, id := range sortedKeys(byExtractor) {
		for _, cand := range byExtractor[id] {
			headKey := norm.Key(cand.Head)
			relKey := norm.Key(cand.Relation)
			tailKey := norm.Key(cand.Tail)
			if headKey == "" || relKey == "" || tailKey == "" {
				stats.Malformed++
				continue
			}

			head, headOK := lookup[headKey]
			tail, tailOK := lookup[tailKey]
			if !headOK || !tailOK {
				stats.Unresolved++
				zap.L().Debug("consolidate: dropping triple with unresolvable endpoint",
					zap.String("extractor", id),
					zap.String("head", cand.Head),
					zap.String("relation", cand.Relation),
					zap.String("tail", cand.Tail),
				)
				continue
			}

			key := tripleKey{head: head, rel: relKey, tail: tail}
			acc, seen := accums[key]
			if !seen {
				acc = &tripleAccum{
					key:      key,
					relation: norm.Surface(cand.Relation),
					voters:   make(map[string]struct{}),
					first:    len(order),
				}
				accums[key] = acc
				order = append(order, acc)
			}
			// An extractor proposing the same key twice still votes once.
			acc.voters[id] = struct{}{}
		}
	}

	retained := make([]*tripleAccum, 0, len(order))
	for _, acc := range order {
		if len(acc.voters) < opts.TripleMinVotes {
			stats.BelowMinVotes++
			continue
		}
		retained = append(retained, acc)
	}
	sort.SliceStable(retained, func(i, j int) bool {
		if len(retained[i].voters) != len(retained[j].voters) {
			return len(retained[i].voters) > len(retained[j].voters)
		}
		return retained[i].first < retained[j].first
	})

	triples := make([]model.ConsolidatedTriple, 0, len(retained))
	for _, acc := range retained {
		triples = append(triples, model.ConsolidatedTriple{
			Head:     acc.key.head,
			Relation: acc.relation,
			Tail:     acc.key.tail,
			Support:  len(acc.voters),
		})
	}
	return triples, stats
}
