package main

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/kg-ensemble/internal/consolidate"
	"github.com/sells-group/kg-ensemble/internal/export"
	"github.com/sells-group/kg-ensemble/internal/ingest"
	"github.com/sells-group/kg-ensemble/internal/model"
	"github.com/sells-group/kg-ensemble/internal/store"
)

var (
	consolidateManifest string
	consolidateOutput   string
	consolidateWorkers  int
	entityMinVotes      int
	tripleMinVotes      int
)

var consolidateCmd = &cobra.Command{
	Use:   "consolidate",
	Short: "Consolidate extractor outputs into one result per document",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		manifest, err := ingest.LoadManifest(consolidateManifest)
		if err != nil {
			return err
		}
		corpus, err := ingest.ReadCorpus(manifest)
		if err != nil {
			return err
		}

		opts := consolidate.Options{
			EntityMinVotes: cfg.Consolidate.EntityMinVotes,
			TripleMinVotes: cfg.Consolidate.TripleMinVotes,
		}
		if entityMinVotes > 0 {
			opts.EntityMinVotes = entityMinVotes
		}
		if tripleMinVotes > 0 {
			opts.TripleMinVotes = tripleMinVotes
		}
		workers := consolidateWorkers
		if workers <= 0 {
			workers = cfg.Consolidate.Workers
		}

		run, err := st.CreateRun(ctx, consolidateManifest)
		if err != nil {
			return eris.Wrap(err, "create run")
		}
		if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return eris.Wrap(err, "mark run running")
		}

		summary, saveFailures := consolidateCorpus(ctx, st, run.ID, corpus, opts, workers)

		if ctx.Err() != nil {
			_ = st.FailRun(context.WithoutCancel(ctx), run.ID, ctx.Err())
			return eris.Wrap(ctx.Err(), "consolidation interrupted")
		}
		if err := st.CompleteRun(ctx, run.ID, summary); err != nil {
			return eris.Wrap(err, "complete run")
		}

		zap.L().Info("consolidation complete",
			zap.String("run_id", run.ID),
			zap.Int("extractors", summary.Extractors),
			zap.Int("skipped_files", summary.SkippedFiles),
			zap.Int("documents", summary.Documents),
			zap.Int("entities", summary.Entities),
			zap.Int("triples", summary.Triples),
			zap.Int("malformed_entities", summary.Diagnostics.MalformedEntities),
			zap.Int("malformed_triples", summary.Diagnostics.MalformedTriples),
			zap.Int("unresolved_triples", summary.Diagnostics.UnresolvedTriples),
			zap.Int64("save_failures", saveFailures),
		)

		if consolidateOutput != "" {
			results, err := st.ListResults(ctx)
			if err != nil {
				return eris.Wrap(err, "list results for export")
			}
			if err := export.WriteFile(consolidateOutput, export.Build(results)); err != nil {
				return err
			}
			zap.L().Info("artifact written",
				zap.String("path", consolidateOutput),
				zap.Int("documents", len(results)),
			)
		}

		return nil
	},
}

func init() {
	consolidateCmd.Flags().StringVar(&consolidateManifest, "manifest", "extractors.yaml", "YAML manifest of extractor result files")
	consolidateCmd.Flags().StringVar(&consolidateOutput, "output", "", "write the consolidated artifact JSON to this path")
	consolidateCmd.Flags().IntVar(&consolidateWorkers, "workers", 0, "concurrent documents (default from config)")
	consolidateCmd.Flags().IntVar(&entityMinVotes, "entity-min-votes", 0, "min extractors agreeing on an entity (default from config)")
	consolidateCmd.Flags().IntVar(&tripleMinVotes, "triple-min-votes", 0, "min extractors agreeing on a triple (default from config)")
	rootCmd.AddCommand(consolidateCmd)
}

// consolidateCorpus runs the per-document reducer over the whole corpus
// with a bounded worker pool. Each document is independent; only the
// summary accumulator and the store are shared, and a failed save never
// aborts the rest of the corpus.
func consolidateCorpus(ctx context.Context, st store.Store, runID string, corpus *ingest.Corpus, opts consolidate.Options, workers int) (*model.RunSummary, int64) {
	summary := &model.RunSummary{
		Extractors:   corpus.Extractors,
		SkippedFiles: len(corpus.SkippedFiles),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	var saveFailures atomic.Int64

	for _, docID := range corpus.DocIDs() {
		inputs := corpus.Documents[docID]
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			result, diag := consolidate.Document(docID, inputs, opts)

			if err := st.SaveResult(gctx, runID, &result); err != nil {
				saveFailures.Add(1)
				zap.L().Error("save result failed",
					zap.String("doc_id", docID),
					zap.Error(err),
				)
				return nil // don't abort the corpus on individual failure
			}

			mu.Lock()
			summary.Documents++
			summary.Entities += len(result.Entities)
			summary.Triples += len(result.Triples)
			summary.Diagnostics.Merge(diag)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return summary, saveFailures.Load()
}
