package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edgi-govdata-archiving/seedgen/internal/build"
	"github.com/edgi-govdata-archiving/seedgen/internal/catalog"
	"github.com/edgi-govdata-archiving/seedgen/internal/config"
	"github.com/edgi-govdata-archiving/seedgen/internal/denylist"
	"github.com/edgi-govdata-archiving/seedgen/internal/pipeline"
	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/internal/storage"
	"github.com/edgi-govdata-archiving/seedgen/pkg/retry"
	"github.com/edgi-govdata-archiving/seedgen/pkg/timeutil"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "seedgen",
	Version: build.FullVersion(),
	Short:   "Generate crawler seed lists from the web monitoring catalog.",
	Long: `seedgen prepares seed lists for web-archiving crawls from the
catalog of monitored URLs in a web-monitoring-db instance.

URLs are grouped by domain, optionally filtered down to reachable
hosts, packed into bounded-size lists and ordered so the crawler
spreads its request load across domains. Catalog credentials come from
the WEB_MONITORING_DB_URL / _EMAIL / _PASSWORD environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// newLogger builds the run logger. Progress goes to stderr so stdout
// stays clean for documents and the manifest.
func newLogger() (*zap.Logger, error) {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.OutputPaths = []string{"stderr"}
	if verbose {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return logConfig.Build()
}

// loadRules loads the denylist override when given, the embedded
// defaults otherwise.
func loadRules(path string) (denylist.Rules, error) {
	if path == "" {
		return denylist.Default(), nil
	}
	rules, err := denylist.Load(path)
	if err != nil {
		return denylist.Rules{}, fmt.Errorf("loading denylist: %w", err)
	}
	return rules, nil
}

// buildPipeline assembles the collaborators for one run.
func buildPipeline(cfg config.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	rules, err := loadRules(cfg.DenylistPath())
	if err != nil {
		return nil, err
	}

	client := catalog.NewClient(catalog.SettingsFromEnv(), rules, logger)

	probeParam := precheck.NewProbeParam(
		cfg.ProbeConnectTimeout(),
		cfg.ProbeReadTimeout(),
		cfg.UserAgent(),
		retry.NewRetryParam(
			0,
			time.Now().UnixNano(),
			cfg.ProbeRetries()+1,
			timeutil.NewBackoffParam(time.Second, 2.0, 30*time.Second),
		),
	)
	checker := precheck.NewChecker(
		cfg.PrecheckWorkers(),
		func() precheck.Prober { return precheck.NewHTTPProber(probeParam) },
		rules,
		logger,
	)

	sink := storage.NewLocalSink(logger)

	return pipeline.New(cfg, client, checker, &sink, client, logger), nil
}
