package format

// Output formats

const (
	FormatText        = "text"
	FormatBrowsertrix = "browsertrix"
)

// DefaultOperator is recorded in the WARC metadata of every crawl
// produced from a browsertrix seed document.
const DefaultOperator = `"Environmental Data & Governance Initiative" <contact@envirodatagov.org>`

// Options tunes the rendered seed document. Zero values fall back to
// defaults at render time, so Options{} is usable as-is.
type Options struct {
	workers          int
	saveStateHistory int
	pageLoadTimeout  int
	operator         string
	overrides        map[string]any
}

// DefaultOptions returns the standard browsertrix tuning: 4 workers,
// save-state history matching the worker count, and a 120s page load
// timeout (the browsertrix default of 90 is too short for some sites
// behind slow CloudFront distributions).
func DefaultOptions() Options {
	return Options{
		workers:         4,
		pageLoadTimeout: 120,
		operator:        DefaultOperator,
	}
}

func (o Options) WithWorkers(workers int) Options {
	o.workers = workers
	return o
}

func (o Options) WithSaveStateHistory(count int) Options {
	o.saveStateHistory = count
	return o
}

func (o Options) WithPageLoadTimeout(seconds int) Options {
	o.pageLoadTimeout = seconds
	return o
}

func (o Options) WithOperator(operator string) Options {
	o.operator = operator
	return o
}

// WithOverrides merges arbitrary document keys on top of the rendered
// defaults. A "warcinfo" override is merged into the warcinfo block
// instead of replacing it.
func (o Options) WithOverrides(overrides map[string]any) Options {
	o.overrides = overrides
	return o
}

func (o Options) Workers() int {
	if o.workers <= 0 {
		return 4
	}
	return o.workers
}

// SaveStateHistory defaults to the worker count: one crawl state per
// worker is enough to resume an interrupted crawl.
func (o Options) SaveStateHistory() int {
	if o.saveStateHistory <= 0 {
		return o.Workers()
	}
	return o.saveStateHistory
}

func (o Options) PageLoadTimeout() int {
	if o.pageLoadTimeout <= 0 {
		return 120
	}
	return o.pageLoadTimeout
}

func (o Options) Operator() string {
	if o.operator == "" {
		return DefaultOperator
	}
	return o.operator
}

func (o Options) Overrides() map[string]any {
	return o.overrides
}
