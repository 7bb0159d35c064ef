package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/catalog"
	"github.com/edgi-govdata-archiving/seedgen/internal/format"
	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/internal/seeds"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

/*
Data flow

  catalog -> (optional) precheck -> pack -> order -> format -> sink

The single-list run skips packing; the import run replays a persisted
precheck log into the tracking system.
*/

// SourceType tags import records so the tracking system knows where
// the network-error observations came from.
const SourceType = "edgi_crawl_precheck"

// GenerateSeeds produces one seed document from the catalog and
// returns it for printing to stdout.
func (p *Pipeline) GenerateSeeds(ctx context.Context) (string, failure.ClassifiedError) {
	p.logger.Info("generating seeds", zap.String("format", p.cfg.Format()))

	urls, err := p.catalog.ActiveURLs(ctx, p.cfg.Pattern())
	if err != nil {
		return "", err
	}

	if p.cfg.Precheck() {
		reachable, _, checkErr := p.prechecker.Check(ctx, urls)
		if checkErr != nil {
			return "", checkErr
		}
		urls = reachable
	}

	ordered, err := p.crawlOrdered(urls)
	if err != nil {
		return "", err
	}

	opts := format.DefaultOptions().WithWorkers(p.cfg.Workers())
	return format.Render(p.cfg.Format(), ordered, opts)
}

// GenerateMultiSeeds writes size-bounded seed files to the output
// directory and returns the written list names for the manifest.
func (p *Pipeline) GenerateMultiSeeds(ctx context.Context) ([]string, failure.ClassifiedError) {
	outputDir := p.cfg.OutputDir()
	p.logger.Info("writing seed files",
		zap.String("dir", outputDir),
		zap.Int("size", p.cfg.Size()),
	)

	ext, err := format.Extension(p.cfg.Format())
	if err != nil {
		return nil, err
	}

	urls, err := p.catalog.ActiveURLs(ctx, p.cfg.Pattern())
	if err != nil {
		return nil, err
	}

	if p.cfg.Precheck() {
		reachable, log, checkErr := p.prechecker.Check(ctx, urls)
		if checkErr != nil {
			return nil, checkErr
		}
		if _, writeErr := p.sink.WritePrecheckLog(outputDir, log); writeErr != nil {
			return nil, writeErr
		}
		urls = reachable
	}

	groups, err := seeds.Group(urls, seeds.GroupByDomain)
	if err != nil {
		return nil, err
	}

	batches, err := seeds.Pack(groups, p.cfg.Size(), p.cfg.SingleGroupSize())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(batches))
	for _, batch := range batches {
		ordered, orderErr := p.crawlOrdered(batch.URLs())
		if orderErr != nil {
			return nil, orderErr
		}

		workers := p.cfg.Workers()
		if batch.Isolated() {
			// One oversized domain per file: more workers would just
			// hammer the same host.
			workers = 1
		}
		opts := format.DefaultOptions().WithWorkers(workers)

		doc, renderErr := format.Render(p.cfg.Format(), ordered, opts)
		if renderErr != nil {
			return nil, renderErr
		}

		result, writeErr := p.sink.WriteSeedFile(outputDir, batch.Name(), ext, []byte(doc))
		if writeErr != nil {
			return nil, writeErr
		}
		names = append(names, result.Name())
	}

	return names, nil
}

// ImportPrecheckErrors replays the unreachable-host entries of a
// persisted precheck log into the tracking system. Processing errors
// are reported per job but never fail the run.
func (p *Pipeline) ImportPrecheckErrors(ctx context.Context, logPath string) failure.ClassifiedError {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return &PipelineError{
			Message: err.Error(),
			Cause:   ErrCauseLogUnreadable,
		}
	}

	var log precheck.Log
	if err := json.Unmarshal(content, &log); err != nil {
		return &PipelineError{
			Message: err.Error(),
			Cause:   ErrCauseLogUnparseable,
		}
	}

	records := recordsFromLog(log)
	p.logger.Info("importing network-error records",
		zap.String("log", logPath),
		zap.Int("records", len(records)),
	)

	jobs, importErr := p.importer.ImportNetworkErrors(ctx, records)
	if importErr != nil {
		return importErr
	}

	for _, job := range jobs {
		if job.ErrorCount() == 0 {
			continue
		}
		p.logger.Warn("import job reported errors",
			zap.Int64("job", job.ID()),
			zap.Int("errors", job.ErrorCount()),
			zap.Strings("details", job.Errors()),
		)
	}
	return nil
}

// crawlOrdered applies crawl-order optimization for formats that care
// about seed order. The text format sorts during rendering, so its
// input order is irrelevant.
func (p *Pipeline) crawlOrdered(urls []string) ([]string, failure.ClassifiedError) {
	if p.cfg.Format() != format.FormatBrowsertrix {
		return urls, nil
	}
	return seeds.CrawlOrder(urls)
}

// recordsFromLog flattens unreachable-host log entries into import
// records, one per affected URL, in stable host order.
func recordsFromLog(log precheck.Log) []catalog.Record {
	hosts := make([]string, 0, len(log))
	for host := range log {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	var records []catalog.Record
	for _, host := range hosts {
		entry := log[host]
		if entry.Error == nil {
			continue
		}
		for _, url := range entry.URLs {
			records = append(records, catalog.Record{
				URL:          url,
				CaptureTime:  entry.Timestamp,
				NetworkError: *entry.Error,
				SourceType:   SourceType,
				SourceMetadata: map[string]any{
					"host": host,
				},
			})
		}
	}
	return records
}
