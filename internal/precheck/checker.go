package precheck

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/seeds"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

/*
Responsibilities

- Group the working set by host and probe one representative URL each
- Run probes through a bounded worker pool, one private client per worker
- Merge results deterministically, independent of completion order

Reachability is treated as a host-level property: if one page of a host
answers, all of its pages stay in the working set.
*/

const DefaultWorkers = 5

// Exempter decides whether a host group skips probing entirely. The
// exemption policy is operational data (it churns as sites come and
// go), so it lives behind this seam instead of in here.
type Exempter interface {
	ExemptHost(host string, urls []string) bool
}

// Checker filters a URL working set down to the URLs of reachable
// hosts, producing a per-host log of every probe verdict.
type Checker struct {
	workers   int
	newProber func() Prober
	exempter  Exempter
	logger    *zap.Logger
	now       func() time.Time
}

// NewChecker builds a Checker. newProber is invoked once per worker so
// each worker owns its own client state. exempter may be nil.
func NewChecker(
	workers int,
	newProber func() Prober,
	exempter Exempter,
	logger *zap.Logger,
) *Checker {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Checker{
		workers:   workers,
		newProber: newProber,
		exempter:  exempter,
		logger:    logger,
		now:       time.Now,
	}
}

type probeTarget struct {
	host string
	url  string
}

type probeResult struct {
	host    string
	verdict string // empty when reachable
}

// Check probes every distinct host in urls and returns the URLs of
// hosts that were not classified unreachable, plus the per-host log.
// Individual probe failures never abort the pass; the only error here
// is a URL that cannot be grouped.
func (c *Checker) Check(ctx context.Context, urls []string) ([]string, Log, failure.ClassifiedError) {
	groups, err := seeds.Group(urls, seeds.GroupByHost)
	if err != nil {
		return nil, nil, err
	}

	hosts := groups.Keys()
	exempt := make(map[string]bool)
	targets := make([]probeTarget, 0, len(hosts))
	for _, host := range hosts {
		hostURLs := groups.Get(host)
		if c.exempter != nil && c.exempter.ExemptHost(host, hostURLs) {
			exempt[host] = true
			continue
		}
		targets = append(targets, probeTarget{host: host, url: hostURLs[0]})
	}

	c.logger.Info("pre-checking hosts for connection failures",
		zap.Int("hosts", len(targets)),
		zap.Int("exempt", len(exempt)),
		zap.Int("workers", c.workers),
	)

	verdicts := c.probeAll(ctx, targets)

	// Deterministic merge: walk hosts in first-appearance order, never
	// in probe completion order.
	reachable := make([]string, 0, len(urls))
	log := make(Log, len(targets))
	timestamp := c.now().UTC().Format(time.RFC3339)
	for _, host := range hosts {
		hostURLs := groups.Get(host)
		if exempt[host] {
			reachable = append(reachable, hostURLs...)
			continue
		}

		entry := LogEntry{
			Timestamp: timestamp,
			URLs:      []string{},
		}
		if verdict := verdicts[host]; verdict != "" {
			entry.Error = &verdict
			entry.URLs = hostURLs
			c.logger.Warn("host unreachable",
				zap.String("host", host),
				zap.String("error", verdict),
				zap.Int("urls", len(hostURLs)),
			)
		} else {
			reachable = append(reachable, hostURLs...)
			c.logger.Info("host reachable", zap.String("host", host))
		}
		log[host] = entry
	}

	return reachable, log, nil
}

// probeAll fans targets out over the worker pool and gathers verdicts.
// The verdict map is written only here, by the single collecting
// goroutine.
func (c *Checker) probeAll(ctx context.Context, targets []probeTarget) map[string]string {
	verdicts := make(map[string]string, len(targets))
	if len(targets) == 0 {
		return verdicts
	}

	workers := c.workers
	if workers > len(targets) {
		workers = len(targets)
	}

	jobs := make(chan probeTarget)
	results := make(chan probeResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prober := c.newProber()
			for target := range jobs {
				results <- probeResult{
					host:    target.host,
					verdict: probeVerdict(prober.Probe(ctx, target.url)),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, target := range targets {
			jobs <- target
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for result := range results {
		verdicts[result.host] = result.verdict
	}
	return verdicts
}

// probeVerdict extracts the verdict string from a probe outcome.
// Anything that is not a classified ProbeError means reachable.
func probeVerdict(err failure.ClassifiedError) string {
	if err == nil {
		return ""
	}
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Verdict
	}
	return ""
}
