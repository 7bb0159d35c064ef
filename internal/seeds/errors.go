package seeds

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

type SeedErrorCause string

const (
	ErrCauseInvalidHostname SeedErrorCause = "no parseable hostname"
	ErrCauseUnknownGroupBy  SeedErrorCause = "unknown grouping mode"
	ErrCauseInvalidPackSize SeedErrorCause = "invalid pack size"
)

// SeedError reports a data-integrity or configuration fault in the
// grouping/packing core. These are always fatal: a URL that cannot be
// grouped or a nonsensical batch size means the run must abort rather
// than silently drop data.
type SeedError struct {
	Message string
	Cause   SeedErrorCause
}

func (e *SeedError) Error() string {
	return fmt.Sprintf("seeds error: %s: %s", e.Cause, e.Message)
}

func (e *SeedError) Severity() failure.Severity {
	return failure.SeverityFatal
}
