package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgi-govdata-archiving/seedgen/internal/config"
)

var (
	multiFormat          string
	multiPattern         string
	multiWorkers         int
	multiSize            int
	multiSingleGroupSize int
	multiOutput          string
	multiPrecheck        bool
	multiDenylist        string
)

var multiSeedsCmd = &cobra.Command{
	Use:   "multi-seeds",
	Short: "Generate multiple seed lists of at most `size` URLs",
	Long: `Generate multiple seed list files in the output directory. Seed
URLs are grouped by primary domain (e.g. "epa.gov") and groups are
packed into seed lists of up to --size URLs each. If a single group has
more than --size URLs, it will be broken into files of
--single-group-size (if set) or --size URLs.

The names of the written lists are printed to standard output as a
JSON array.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		cfg, err := config.WithDefault().
			WithFormat(multiFormat).
			WithPattern(multiPattern).
			WithWorkers(multiWorkers).
			WithSize(multiSize).
			WithSingleGroupSize(multiSingleGroupSize).
			WithOutputDir(multiOutput).
			WithPrecheck(multiPrecheck).
			WithDenylistPath(multiDenylist).
			Build()
		if err != nil {
			return err
		}

		p, err := buildPipeline(cfg, logger)
		if err != nil {
			return err
		}

		names, genErr := p.GenerateMultiSeeds(cmd.Context())
		if genErr != nil {
			return genErr
		}

		manifest, err := json.Marshal(names)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(manifest))
		return nil
	},
}

func init() {
	multiSeedsCmd.Flags().StringVar(&multiFormat, "format", "browsertrix", "format of seeds output (text or browsertrix)")
	multiSeedsCmd.Flags().StringVar(&multiPattern, "pattern", "", "only list URLs matching this pattern (leading ! negates)")
	multiSeedsCmd.Flags().IntVar(&multiWorkers, "workers", 2, "how many crawl workers (browsertrix only)")
	multiSeedsCmd.Flags().IntVar(&multiSize, "size", 1000, "how many URLs per seed list")
	multiSeedsCmd.Flags().IntVar(&multiSingleGroupSize, "single-group-size", 0, "chunk size for splitting a single oversized group (defaults to value of --size)")
	multiSeedsCmd.Flags().StringVar(&multiOutput, "output", ".", "directory to write seed lists to")
	multiSeedsCmd.Flags().BoolVar(&multiPrecheck, "precheck-connections", false, "filter out hosts that are unreachable (DNS resolution errors, connection timeouts, etc.)")
	multiSeedsCmd.Flags().StringVar(&multiDenylist, "denylist", "", "rules file overriding the built-in ignore/exemption lists")
	rootCmd.AddCommand(multiSeedsCmd)
}
