package ingest

import (
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/kg-ensemble/internal/model"
)

// Corpus regroups every loaded extractor's output per document.
type Corpus struct {
	// Documents maps doc id -> extractor id -> that extractor's block.
	Documents map[string]map[string]model.ExtractorDocument
	// Extractors counts the files that loaded successfully.
	Extractors int
	// SkippedFiles lists extractor ids whose files could not be read or
	// decoded. Skipping a file is a warning, never fatal to the run.
	SkippedFiles []string
}

// DocIDs returns the corpus document ids in sorted order.
func (c *Corpus) DocIDs() []string {
	ids := make([]string, 0, len(c.Documents))
	for id := range c.Documents {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DecodeResults decodes one extractor results file: a JSON object keyed
// by document id.
func DecodeResults(r io.Reader) (model.ExtractorOutput, error) {
	var out model.ExtractorOutput
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, eris.Wrap(err, "ingest: decode results")
	}
	return out, nil
}

// ReadCorpus loads every extractor file named by the manifest and
// regroups the documents. Unreadable or malformed files are skipped with
// a warning; an all-skipped manifest still yields a valid empty corpus.
func ReadCorpus(m *Manifest) (*Corpus, error) {
	if m == nil || len(m.Extractors) == 0 {
		return nil, eris.New("ingest: no extractors to read")
	}

	corpus := &Corpus{Documents: make(map[string]map[string]model.ExtractorDocument)}
	for _, src := range m.Extractors {
		out, err := readResultsFile(src.Path)
		if err != nil {
			corpus.SkippedFiles = append(corpus.SkippedFiles, src.ID)
			zap.L().Warn("ingest: skipping extractor file",
				zap.String("extractor", src.ID),
				zap.String("path", src.Path),
				zap.Error(err),
			)
			continue
		}

		corpus.Extractors++
		for docID, doc := range out {
			if docID == "" {
				continue
			}
			if corpus.Documents[docID] == nil {
				corpus.Documents[docID] = make(map[string]model.ExtractorDocument)
			}
			corpus.Documents[docID][src.ID] = doc
		}
	}

	zap.L().Info("ingest: corpus loaded",
		zap.Int("extractors", corpus.Extractors),
		zap.Int("skipped_files", len(corpus.SkippedFiles)),
		zap.Int("documents", len(corpus.Documents)),
	)
	return corpus, nil
}

func readResultsFile(path string) (model.ExtractorOutput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return DecodeResults(f)
}
