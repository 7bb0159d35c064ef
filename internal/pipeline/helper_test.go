package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/catalog"
	"github.com/edgi-govdata-archiving/seedgen/internal/config"
	"github.com/edgi-govdata-archiving/seedgen/internal/pipeline"
	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/internal/storage"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/hashutil"
)

// catalogMock is a testify mock for the Catalog seam
type catalogMock struct {
	mock.Mock
}

func (c *catalogMock) ActiveURLs(ctx context.Context, pattern string) ([]string, failure.ClassifiedError) {
	args := c.Called(ctx, pattern)
	var urls []string
	if args.Get(0) != nil {
		urls = args.Get(0).([]string)
	}
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return urls, err
}

// precheckerMock is a testify mock for the Prechecker seam
type precheckerMock struct {
	mock.Mock
}

func (p *precheckerMock) Check(ctx context.Context, urls []string) ([]string, precheck.Log, failure.ClassifiedError) {
	args := p.Called(ctx, urls)
	var reachable []string
	if args.Get(0) != nil {
		reachable = args.Get(0).([]string)
	}
	var log precheck.Log
	if args.Get(1) != nil {
		log = args.Get(1).(precheck.Log)
	}
	var err failure.ClassifiedError
	if args.Get(2) != nil {
		err = args.Get(2).(failure.ClassifiedError)
	}
	return reachable, log, err
}

// importerMock is a testify mock for the Importer seam
type importerMock struct {
	mock.Mock
}

func (i *importerMock) ImportNetworkErrors(ctx context.Context, records []catalog.Record) ([]catalog.ImportJob, failure.ClassifiedError) {
	args := i.Called(ctx, records)
	var jobs []catalog.ImportJob
	if args.Get(0) != nil {
		jobs = args.Get(0).([]catalog.ImportJob)
	}
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return jobs, err
}

// seedWrite records one WriteSeedFile call.
type seedWrite struct {
	dir     string
	name    string
	ext     string
	content string
}

// recordingSink is an in-memory Sink double.
type recordingSink struct {
	mu          sync.Mutex
	seedWrites  []seedWrite
	precheckLog *precheck.Log
	logDir      string
}

func (s *recordingSink) WriteSeedFile(outputDir string, name string, ext string, content []byte) (storage.WriteResult, failure.ClassifiedError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedWrites = append(s.seedWrites, seedWrite{
		dir:     outputDir,
		name:    name,
		ext:     ext,
		content: string(content),
	})
	safeName := sanitize(name)
	return storage.NewWriteResult(safeName, outputDir+"/"+safeName+".seeds."+ext, hashutil.Digest(content)), nil
}

func (s *recordingSink) WritePrecheckLog(outputDir string, log precheck.Log) (storage.WriteResult, failure.ClassifiedError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precheckLog = &log
	s.logDir = outputDir
	return storage.NewWriteResult(storage.PrecheckLogFilename, outputDir+"/"+storage.PrecheckLogFilename, ""), nil
}

func sanitize(name string) string {
	out := []byte(name)
	for i, b := range out {
		if b == '.' {
			out[i] = '-'
		}
	}
	return string(out)
}

func buildConfig(t *testing.T, build func(*config.Config) *config.Config) config.Config {
	t.Helper()
	cfg, err := build(config.WithDefault()).Build()
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	return cfg
}

func newPipelineForTest(
	cfg config.Config,
	cat *catalogMock,
	prechecker *precheckerMock,
	sink *recordingSink,
	importer *importerMock,
) *pipeline.Pipeline {
	return pipeline.New(cfg, cat, prechecker, sink, importer, zap.NewNop())
}
