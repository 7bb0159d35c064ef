package precheck

import (
	"fmt"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

// ProbeError reports a classified network-level failure of one probe.
// It is always recoverable at the run level: unreachable hosts become
// log entries, never aborts. Retryable is true for all three verdicts
// since transient DNS or connect hiccups are exactly what the probe's
// retry budget exists for.
type ProbeError struct {
	Message   string
	Retryable bool
	Verdict   string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe error: %s: %s", e.Verdict, e.Message)
}

func (e *ProbeError) Severity() failure.Severity {
	return failure.SeverityRecoverable
}

// IsRetryable returns whether this error is retryable
func (e *ProbeError) IsRetryable() bool {
	return e.Retryable
}
