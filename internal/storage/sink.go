package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/fileutil"
	"github.com/edgi-govdata-archiving/seedgen/pkg/hashutil"
)

/*
Responsibilities

- Persist seed list files with deterministic names
- Persist the precheck log artifact
- Digest everything written

Output Characteristics

- Stable filenames: <sanitized name>.seeds.<ext>
- Overwrite-safe reruns
*/

// Sink persists run artifacts.
type Sink interface {
	WriteSeedFile(outputDir string, name string, ext string, content []byte) (WriteResult, failure.ClassifiedError)
	WritePrecheckLog(outputDir string, log precheck.Log) (WriteResult, failure.ClassifiedError)
}

// PrecheckLogFilename is fixed: the import step and operators look for
// exactly this name next to the seed files.
const PrecheckLogFilename = "precheck.log.json"

type LocalSink struct {
	logger *zap.Logger
}

func NewLocalSink(logger *zap.Logger) LocalSink {
	return LocalSink{
		logger: logger,
	}
}

// WriteSeedFile writes one seed list as
// <outputDir>/<name with . replaced by ->.seeds.<ext>.
func (s *LocalSink) WriteSeedFile(outputDir string, name string, ext string, content []byte) (WriteResult, failure.ClassifiedError) {
	safeName := fileutil.SanitizeName(name)
	filename := safeName + ".seeds." + ext
	result, err := s.writeFile(outputDir, filename, safeName, content)
	if err != nil {
		return WriteResult{}, err
	}

	s.logger.Info("wrote seed file",
		zap.String("path", result.Path()),
		zap.String("digest", result.Digest()),
	)
	return result, nil
}

// WritePrecheckLog persists the host reachability log next to the
// seed files.
func (s *LocalSink) WritePrecheckLog(outputDir string, log precheck.Log) (WriteResult, failure.ClassifiedError) {
	content, err := json.Marshal(log)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodingFail,
		}
	}

	result, writeErr := s.writeFile(outputDir, PrecheckLogFilename, PrecheckLogFilename, content)
	if writeErr != nil {
		return WriteResult{}, writeErr
	}

	s.logger.Info("wrote precheck log",
		zap.String("path", result.Path()),
		zap.Int("hosts", len(log)),
	)
	return result, nil
}

func (s *LocalSink) writeFile(outputDir string, filename string, name string, content []byte) (WriteResult, failure.ClassifiedError) {
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}

	fullPath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
		}
	}

	return NewWriteResult(name, fullPath, hashutil.Digest(content)), nil
}
