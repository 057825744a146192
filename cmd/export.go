package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/kg-ensemble/internal/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the consolidated artifact JSON from stored results",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		results, err := st.ListResults(ctx)
		if err != nil {
			return eris.Wrap(err, "export: list results")
		}
		artifact := export.Build(results)

		if exportOutput == "" {
			return export.Write(os.Stdout, artifact)
		}
		if err := export.WriteFile(exportOutput, artifact); err != nil {
			return err
		}

		zap.L().Info("artifact written",
			zap.String("path", exportOutput),
			zap.Int("documents", len(artifact)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
