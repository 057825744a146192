package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/kg-ensemble/internal/model"
)

func sampleInputs() map[string]model.ExtractorDocument {
	return map[string]model.ExtractorDocument{
		"gpt": {
			Title:  "",
			Domain: "",
			Entities: []model.EntityCandidate{
				{Mentions: []string{"U.S.", "United States"}, Type: "location"},
				{Mentions: []string{"Texas"}, Type: "location"},
			},
			Triples: []model.TripleCandidate{
				{Head: "United States", Relation: "has part(s)", Tail: "Texas"},
				{Head: "United States", Relation: "instance of", Tail: "country"},
			},
		},
		"rebel": {
			Title:  "United States",
			Domain: "geography",
			Entities: []model.EntityCandidate{
				{Mentions: []string{"United States"}, Type: "geo-political entity"},
				{Mentions: []string{"Texas"}, Type: "location"},
			},
			Triples: []model.TripleCandidate{
				{Head: "United States", Relation: "has part(s)", Tail: "Texas"},
			},
		},
	}
}

func TestDocument_EndToEnd(t *testing.T) {
	result, diag := Document("doc-1", sampleInputs(), Options{})

	assert.Equal(t, "doc-1", result.DocID)
	assert.Equal(t, "United States", result.Title)
	assert.Equal(t, "geography", result.Domain)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, 2, result.Entities[0].Support)
	assert.Equal(t, 2, result.Entities[1].Support)

	require.Len(t, result.Triples, 1)
	assert.Equal(t, "has part(s)", result.Triples[0].Relation)
	assert.Equal(t, 2, result.Triples[0].Support)
	assert.Equal(t, "U.S.", result.HeadEntity(result.Triples[0]).Canonical())
	assert.Equal(t, "Texas", result.TailEntity(result.Triples[0]).Canonical())

	assert.Equal(t, 2, diag.Extractors)
	assert.Equal(t, 1, diag.UnresolvedTriples)
	assert.Zero(t, diag.MalformedEntities)
}

func TestDocument_Deterministic(t *testing.T) {
	first, firstDiag := Document("doc-1", sampleInputs(), Options{})
	second, secondDiag := Document("doc-1", sampleInputs(), Options{})

	require.Equal(t, first, second)
	require.Equal(t, firstDiag, secondDiag)
}

func TestDocument_TitleFromFirstNonEmptyInOrder(t *testing.T) {
	inputs := map[string]model.ExtractorDocument{
		"c": {Title: "Third"},
		"a": {Title: ""},
		"b": {Title: "  Second  "},
	}

	result, _ := Document("doc-1", inputs, Options{})

	assert.Equal(t, "Second", result.Title)
}

func TestDocument_NoInputs(t *testing.T) {
	result, diag := Document("doc-1", nil, Options{})

	assert.Equal(t, "doc-1", result.DocID)
	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Triples)
	assert.Zero(t, diag.Extractors)
}

func TestDocument_AllCandidatesMalformed(t *testing.T) {
	inputs := map[string]model.ExtractorDocument{
		"a": {
			Entities: []model.EntityCandidate{{Mentions: []string{" "}, Type: "thing"}},
			Triples:  []model.TripleCandidate{{Head: "", Relation: "r", Tail: "x"}},
		},
	}

	result, diag := Document("doc-1", inputs, Options{})

	assert.Empty(t, result.Entities)
	assert.Empty(t, result.Triples)
	assert.Equal(t, 1, diag.MalformedEntities)
	assert.Equal(t, 1, diag.MalformedTriples)
}

func TestDocument_TripleIndicesStayInRange(t *testing.T) {
	result, _ := Document("doc-1", sampleInputs(), Options{})

	for _, tr := range result.Triples {
		assert.GreaterOrEqual(t, tr.Head, 0)
		assert.Less(t, tr.Head, len(result.Entities))
		assert.GreaterOrEqual(t, tr.Tail, 0)
		assert.Less(t, tr.Tail, len(result.Entities))
	}
}
