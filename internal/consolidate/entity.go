package consolidate

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// EntityStats reports the conditions entity consolidation recovered from.
type EntityStats struct {
	Malformed     int
	BelowMinVotes int
}

// member is one well-formed entity candidate in the clustering arena.
// Surfaces and keys are parallel slices.
type member struct {
	extractor string
	surfaces  []string
	keys      []string
	typ       string
}

// Entities merges every extractor's entity candidates for one document
// into a deduplicated list. Candidates sharing a normalized mention merge
// transitively into one cluster; each cluster's type is the majority vote
// and its support is the number of distinct contributing extractors.
func Entities(byExtractor map[string][]model.EntityCandidate, opts Options) ([]model.ConsolidatedEntity, EntityStats) {
	return consolidateEntities(NewNormalizer(), byExtractor, opts.withDefaults())
}

func consolidateEntities(norm *Normalizer, byExtractor map[string][]model.EntityCandidate, opts Options) ([]model.ConsolidatedEntity, EntityStats) {
	var stats EntityStats

	// Arena of well-formed candidates in deterministic first-appearance
	// order: extractor ids sorted, candidate order preserved within each.
	var arena []member
	for _, id := range sortedKeys(byExtractor) {
		for _, cand := range byExtractor[id] {
			m, ok := newMember(norm, id, cand)
			if !ok {
				stats.Malformed++
				zap.L().Debug("consolidate: skipping malformed entity candidate",
					zap.String("extractor", id),
					zap.Strings("mentions", cand.Mentions),
					zap.String("type", cand.Type),
				)
				continue
			}
			arena = append(arena, m)
		}
	}

	// Cluster transitively over the "shares a normalized mention"
	// relation. Exact key match only; no fuzzy matching.
	uf := newUnionFind(len(arena))
	keyOwner := make(map[string]int)
	for i, m := range arena {
		for _, k := range m.keys {
			if j, seen := keyOwner[k]; seen {
				uf.union(i, j)
			} else {
				keyOwner[k] = i
			}
		}
	}

	clusters := make(map[int][]int)
	var order []int
	for i := range arena {
		root := uf.find(i)
		if _, seen := clusters[root]; !seen {
			order = append(order, root)
		}
		clusters[root] = append(clusters[root], i)
	}

	entities := make([]model.ConsolidatedEntity, 0, len(order))
	for _, root := range order {
		e := buildEntity(arena, clusters[root])
		if e.Support < opts.EntityMinVotes {
			stats.BelowMinVotes++
			continue
		}
		entities = append(entities, e)
	}
	return entities, stats
}

// newMember validates and normalizes one candidate. A missing type, an
// empty mention list, or mentions with no comparable content make it
// malformed.
func newMember(norm *Normalizer, extractor string, cand model.EntityCandidate) (member, bool) {
	typ := strings.TrimSpace(cand.Type)
	if typ == "" || len(cand.Mentions) == 0 {
		return member{}, false
	}
	m := member{extractor: extractor, typ: typ}
	for _, s := range cand.Mentions {
		k := norm.Key(s)
		if k == "" {
			continue
		}
		m.keys = append(m.keys, k)
		m.surfaces = append(m.surfaces, norm.Surface(s))
	}
	if len(m.keys) == 0 {
		return member{}, false
	}
	return m, true
}

// buildEntity merges a cluster's members. Mention order follows the first
// appearance of each normalized key; the surface kept per key is the most
// frequent variant, ties to the earliest seen.
func buildEntity(arena []member, members []int) model.ConsolidatedEntity {
	var keyOrder []string
	surfaceCount := make(map[string]map[string]int)
	surfaceFirst := make(map[string]map[string]int)
	typeVotes := make(map[string]int)
	typeExtractors := make(map[string]map[string]struct{})
	extractors := make(map[string]struct{})

	arrival := 0
	for _, idx := range members {
		m := arena[idx]
		extractors[m.extractor] = struct{}{}
		typeVotes[m.typ]++
		if typeExtractors[m.typ] == nil {
			typeExtractors[m.typ] = make(map[string]struct{})
		}
		typeExtractors[m.typ][m.extractor] = struct{}{}

		for i, k := range m.keys {
			if surfaceCount[k] == nil {
				surfaceCount[k] = make(map[string]int)
				surfaceFirst[k] = make(map[string]int)
				keyOrder = append(keyOrder, k)
			}
			s := m.surfaces[i]
			surfaceCount[k][s]++
			if _, seen := surfaceFirst[k][s]; !seen {
				surfaceFirst[k][s] = arrival
			}
			arrival++
		}
	}

	mentions := make([]string, 0, len(keyOrder))
	for _, k := range keyOrder {
		mentions = append(mentions, canonicalSurface(surfaceCount[k], surfaceFirst[k]))
	}

	return model.ConsolidatedEntity{
		Mentions: mentions,
		Type:     resolveType(typeVotes, typeExtractors),
		Support:  len(extractors),
	}
}

// canonicalSurface picks the most frequent surface variant for one
// normalized key, ties to the variant seen first.
func canonicalSurface(count, first map[string]int) string {
	var best string
	seen := false
	for s := range count {
		if !seen {
			best, seen = s, true
			continue
		}
		if count[s] > count[best] || (count[s] == count[best] && first[s] < first[best]) {
			best = s
		}
	}
	return best
}

// resolveType applies the tie-break chain: vote count, then distinct
// contributing extractors, then lexicographically smallest label.
func resolveType(votes map[string]int, extractors map[string]map[string]struct{}) string {
	labels := make([]string, 0, len(votes))
	for t := range votes {
		labels = append(labels, t)
	}
	sort.Strings(labels)

	best := labels[0]
	for _, t := range labels[1:] {
		if votes[t] > votes[best] {
			best = t
			continue
		}
		if votes[t] == votes[best] && len(extractors[t]) > len(extractors[best]) {
			best = t
		}
	}
	return best
}
