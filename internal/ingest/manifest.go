// Package ingest loads extractor result files and regroups them into
// per-document candidate sets for consolidation.
package ingest

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Manifest lists the extractor result files feeding one consolidation run.
type Manifest struct {
	Extractors []ExtractorSource `yaml:"extractors"`
}

// ExtractorSource names one extractor and the path of its results file.
// Relative paths resolve against the manifest's directory.
type ExtractorSource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// LoadManifest reads and validates a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read manifest %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "ingest: parse manifest")
	}
	if len(m.Extractors) == 0 {
		return nil, eris.New("ingest: manifest lists no extractors")
	}

	seen := make(map[string]struct{}, len(m.Extractors))
	base := filepath.Dir(path)
	for i, e := range m.Extractors {
		if e.ID == "" || e.Path == "" {
			return nil, eris.Errorf("ingest: manifest entry %d missing id or path", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, eris.Errorf("ingest: duplicate extractor id %q", e.ID)
		}
		seen[e.ID] = struct{}{}

		if !filepath.IsAbs(e.Path) {
			m.Extractors[i].Path = filepath.Join(base, e.Path)
		}
	}

	return &m, nil
}
