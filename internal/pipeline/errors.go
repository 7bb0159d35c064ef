package pipeline

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type PipelineErrorCause string

const (
	ErrCauseLogUnreadable  PipelineErrorCause = "precheck log unreadable"
	ErrCauseLogUnparseable PipelineErrorCause = "precheck log does not parse"
)

type PipelineError struct {
	Message string
	Cause   PipelineErrorCause
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error: %s: %s", e.Cause, e.Message)
}

func (e *PipelineError) Severity() failure.Severity {
	return failure.SeverityFatal
}
