package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/catalog"
	"github.com/edgi-govdata-archiving/seedgen/internal/config"
	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/internal/storage"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

// Collaborator seams. The pipeline only orchestrates; everything that
// touches the network or the filesystem sits behind one of these.

// Catalog lists the monitored URLs to build seeds from.
type Catalog interface {
	ActiveURLs(ctx context.Context, pattern string) ([]string, failure.ClassifiedError)
}

// Importer reports network-error records back to the tracking system.
type Importer interface {
	ImportNetworkErrors(ctx context.Context, records []catalog.Record) ([]catalog.ImportJob, failure.ClassifiedError)
}

// Prechecker filters the working set down to reachable hosts.
type Prechecker interface {
	Check(ctx context.Context, urls []string) ([]string, precheck.Log, failure.ClassifiedError)
}

// Sink persists seed files and the precheck log.
type Sink interface {
	WriteSeedFile(outputDir string, name string, ext string, content []byte) (storage.WriteResult, failure.ClassifiedError)
	WritePrecheckLog(outputDir string, log precheck.Log) (storage.WriteResult, failure.ClassifiedError)
}

// Pipeline wires catalog, precheck, packing, formatting and storage
// into the seed generation runs.
type Pipeline struct {
	cfg        config.Config
	catalog    Catalog
	prechecker Prechecker
	sink       Sink
	importer   Importer
	logger     *zap.Logger
}

func New(
	cfg config.Config,
	cat Catalog,
	prechecker Prechecker,
	sink Sink,
	importer Importer,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		catalog:    cat,
		prechecker: prechecker,
		sink:       sink,
		importer:   importer,
		logger:     logger,
	}
}
