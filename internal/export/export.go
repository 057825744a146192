// Package export writes the external results artifact: one JSON object
// keyed by document id, each value holding title, entities, and triples
// with endpoints rendered as canonical mention strings.
package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// Entity is the artifact form of a consolidated entity.
type Entity struct {
	Mentions []string `json:"mentions"`
	Type     string   `json:"type"`
}

// Triple is the artifact form of a consolidated triple. Head and tail are
// the canonical mentions of the entities the triple resolved to.
type Triple struct {
	Head     string `json:"head"`
	Relation string `json:"relation"`
	Tail     string `json:"tail"`
}

// Document is one consolidated document in the artifact.
type Document struct {
	Title    string   `json:"title"`
	Entities []Entity `json:"entities"`
	Triples  []Triple `json:"triples"`
}

// Artifact maps document id to its consolidated document. encoding/json
// sorts map keys, so serialization is deterministic.
type Artifact map[string]Document

// Build converts stored results into the artifact form.
func Build(results []model.DocumentResult) Artifact {
	artifact := make(Artifact, len(results))
	for i := range results {
		r := &results[i]

		entities := make([]Entity, 0, len(r.Entities))
		for _, e := range r.Entities {
			entities = append(entities, Entity{Mentions: e.Mentions, Type: e.Type})
		}

		triples := make([]Triple, 0, len(r.Triples))
		for _, t := range r.Triples {
			triples = append(triples, Triple{
				Head:     r.HeadEntity(t).Canonical(),
				Relation: t.Relation,
				Tail:     r.TailEntity(t).Canonical(),
			})
		}

		artifact[r.DocID] = Document{
			Title:    r.Title,
			Entities: entities,
			Triples:  triples,
		}
	}
	return artifact
}

// Write serializes the artifact as indented JSON.
func Write(w io.Writer, artifact Artifact) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return eris.Wrap(enc.Encode(artifact), "export: encode artifact")
}

// WriteFile writes the artifact to a file, creating or truncating it.
func WriteFile(path string, artifact Artifact) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := Write(f, artifact); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
