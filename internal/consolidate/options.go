package consolidate

import "sort"

// Default vote thresholds. Entities are recall-oriented: a single
// extractor's entity survives. Triples require agreement.
const (
	DefaultEntityMinVotes = 1
	DefaultTripleMinVotes = 2
)

// Options control the voting thresholds for a document's consolidation.
// Zero values fall back to the defaults.
type Options struct {
	EntityMinVotes int
	TripleMinVotes int
}

func (o Options) withDefaults() Options {
	if o.EntityMinVotes < 1 {
		o.EntityMinVotes = DefaultEntityMinVotes
	}
	if o.TripleMinVotes < 1 {
		o.TripleMinVotes = DefaultTripleMinVotes
	}
	return o
}

// sortedKeys gives map iteration a stable order. First-appearance
// ordering in the output derives from it: extractor ids sort
// lexicographically, candidate order within an extractor is preserved.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
