package config

import (
	"fmt"
	"time"

	"github.com/edgi-govdata-archiving/seedgen/internal/format"
)

type Config struct {
	//===============
	// Selection
	//===============
	// Output document format: "text" or "browsertrix"
	outputFormat string
	// Catalog URL filter; a leading "!" makes it an anti-pattern
	pattern string

	//===============
	// Packing
	//===============
	// How many URLs per seed list
	size int
	// Chunk size for splitting a single oversized group (0 = size)
	singleGroupSize int

	//===============
	// Crawl hints
	//===============
	// Worker count written into browsertrix documents
	workers int

	//===============
	// Precheck
	//===============
	// Whether to filter out unreachable hosts before packing
	precheck bool
	// Concurrent reachability probes
	precheckWorkers int
	// Dial-phase budget of one probe
	probeConnectTimeout time.Duration
	// Response-header budget of one probe
	probeReadTimeout time.Duration
	// Extra attempts after the first failed probe
	probeRetries int

	//===============
	// I/O
	//===============
	// Directory seed lists and the precheck log are written to
	outputDir string
	// Optional rules file overriding the built-in denylist
	denylistPath string
	// User agent for probe requests
	userAgent string
}

// WithDefault creates a Config with the defaults of the single-list
// "seeds" command; multi-list runs override workers and output.
func WithDefault() *Config {
	defaultConfig := Config{
		outputFormat:        format.FormatText,
		pattern:             "",
		size:                1000,
		singleGroupSize:     0,
		workers:             4,
		precheck:            false,
		precheckWorkers:     5,
		probeConnectTimeout: 60 * time.Second,
		probeReadTimeout:    10 * time.Second,
		probeRetries:        2,
		outputDir:           ".",
		denylistPath:        "",
		userAgent:           "edgi-seedgen/1.0 (+https://envirodatagov.org)",
	}
	return &defaultConfig
}

func (c *Config) WithFormat(outputFormat string) *Config {
	c.outputFormat = outputFormat
	return c
}

func (c *Config) WithPattern(pattern string) *Config {
	c.pattern = pattern
	return c
}

func (c *Config) WithSize(size int) *Config {
	c.size = size
	return c
}

func (c *Config) WithSingleGroupSize(size int) *Config {
	c.singleGroupSize = size
	return c
}

func (c *Config) WithWorkers(workers int) *Config {
	c.workers = workers
	return c
}

func (c *Config) WithPrecheck(precheck bool) *Config {
	c.precheck = precheck
	return c
}

func (c *Config) WithPrecheckWorkers(workers int) *Config {
	c.precheckWorkers = workers
	return c
}

func (c *Config) WithProbeConnectTimeout(timeout time.Duration) *Config {
	c.probeConnectTimeout = timeout
	return c
}

func (c *Config) WithProbeReadTimeout(timeout time.Duration) *Config {
	c.probeReadTimeout = timeout
	return c
}

func (c *Config) WithProbeRetries(retries int) *Config {
	c.probeRetries = retries
	return c
}

func (c *Config) WithOutputDir(dir string) *Config {
	c.outputDir = dir
	return c
}

func (c *Config) WithDenylistPath(path string) *Config {
	c.denylistPath = path
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) Build() (Config, error) {
	if c.outputFormat != format.FormatText && c.outputFormat != format.FormatBrowsertrix {
		return Config{}, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.outputFormat)
	}
	if c.size <= 0 {
		return Config{}, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.size)
	}
	if c.singleGroupSize < 0 {
		return Config{}, fmt.Errorf("%w: single group size must not be negative, got %d", ErrInvalidConfig, c.singleGroupSize)
	}
	if c.workers <= 0 {
		return Config{}, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.workers)
	}
	if c.precheckWorkers <= 0 {
		return Config{}, fmt.Errorf("%w: precheck workers must be positive, got %d", ErrInvalidConfig, c.precheckWorkers)
	}
	if c.probeRetries < 0 {
		return Config{}, fmt.Errorf("%w: probe retries must not be negative, got %d", ErrInvalidConfig, c.probeRetries)
	}
	return *c, nil
}

func (c Config) Format() string {
	return c.outputFormat
}

func (c Config) Pattern() string {
	return c.pattern
}

func (c Config) Size() int {
	return c.size
}

func (c Config) SingleGroupSize() int {
	return c.singleGroupSize
}

func (c Config) Workers() int {
	return c.workers
}

func (c Config) Precheck() bool {
	return c.precheck
}

func (c Config) PrecheckWorkers() int {
	return c.precheckWorkers
}

func (c Config) ProbeConnectTimeout() time.Duration {
	return c.probeConnectTimeout
}

func (c Config) ProbeReadTimeout() time.Duration {
	return c.probeReadTimeout
}

func (c Config) ProbeRetries() int {
	return c.probeRetries
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) DenylistPath() string {
	return c.denylistPath
}

func (c Config) UserAgent() string {
	return c.userAgent
}
