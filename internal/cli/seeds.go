package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgi-govdata-archiving/seedgen/internal/config"
)

var (
	seedsFormat   string
	seedsPattern  string
	seedsWorkers  int
	seedsPrecheck bool
	seedsDenylist string
)

var seedsCmd = &cobra.Command{
	Use:   "seeds",
	Short: "Generate crawler seeds",
	Long: `Generate one seed document from the catalog and print it to
standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := config.WithDefault().
			WithFormat(seedsFormat).
			WithPattern(seedsPattern).
			WithWorkers(seedsWorkers).
			WithPrecheck(seedsPrecheck).
			WithDenylistPath(seedsDenylist).
			Build()
		if err != nil {
			return err
		}

		p, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		doc, genErr := p.GenerateSeeds(cmd.Context())
		if genErr != nil {
			return genErr
		}

		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	},
}

func init() {
	seedsCmd.Flags().StringVar(&seedsFormat, "format", "text", "format of seeds output (text or browsertrix)")
	seedsCmd.Flags().StringVar(&seedsPattern, "pattern", "", "only list URLs matching this pattern (leading ! negates)")
	seedsCmd.Flags().IntVar(&seedsWorkers, "workers", 4, "how many crawl workers (browsertrix only)")
	seedsCmd.Flags().BoolVar(&seedsPrecheck, "precheck-connections", false, "filter out hosts that are unreachable (DNS resolution errors, connection timeouts, etc.)")
	seedsCmd.Flags().StringVar(&seedsDenylist, "denylist", "", "rules file overriding the built-in ignore/exemption lists")
	rootCmd.AddCommand(seedsCmd)
}
