package format

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type FormatErrorCause string

const (
	ErrCauseUnknownFormat FormatErrorCause = "unknown format"
	ErrCauseEncodingFail  FormatErrorCause = "encoding failed"
)

type FormatError struct {
	Message string
	Cause   FormatErrorCause
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s: %s", e.Cause, e.Message)
}

func (e *FormatError) Severity() failure.Severity {
	return failure.SeverityFatal
}
