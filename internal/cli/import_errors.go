package cmd

import (
	"github.com/spf13/cobra"

	"github.com/edgi-govdata-archiving/seedgen/internal/config"
)

var importErrorsCmd = &cobra.Command{
	Use:   "import-errors LOGFILE",
	Short: "Import a precheck log's network errors into the tracking system",
	Long: `Read a precheck.log.json written by a previous run and import its
unreachable-host records into the monitoring database, one record per
affected URL. Per-job processing errors are reported but do not fail
the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := config.WithDefault().Build()
		if err != nil {
			return err
		}

		p, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		if importErr := p.ImportPrecheckErrors(cmd.Context(), args[0]); importErr != nil {
			return importErr
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importErrorsCmd)
}
