package failure

type Severity int

// run control flow: fatal aborts the invocation, recoverable is
// absorbed into logs/reports and the run continues
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

type ClassifiedError interface {
	error
	Severity() Severity
}
