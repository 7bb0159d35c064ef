package precheck

import (
	"time"

	"github.com/edgi-govdata-archiving/seedgen/pkg/retry"
	"github.com/edgi-govdata-archiving/seedgen/pkg/timeutil"
)

// Reachability verdicts. These exact strings are a wire contract: the
// precheck log is consumed by the error-record import step and by
// operators comparing runs, so they must never change.
const (
	VerdictNameNotResolved = "name-not-resolved"
	VerdictTimeout         = "timeout"
	VerdictConnectionReset = "connection-reset"
)

// LogEntry is the per-host record persisted in precheck.log.json.
// URLs is populated only when the host was classified unreachable;
// reachable hosts keep an empty list.
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Error     *string  `json:"error"`
	URLs      []string `json:"urls"`
}

// Log maps each probed host to its entry.
type Log map[string]LogEntry

// ProbeParam carries the tuning of a single reachability probe.
type ProbeParam struct {
	// connectTimeout bounds the dial phase. Generous on purpose: the
	// monitored servers are sometimes extremely slow to accept.
	connectTimeout time.Duration
	// readTimeout bounds the wait for response headers once connected.
	readTimeout time.Duration
	userAgent   string
	retryParam  retry.RetryParam
}

func NewProbeParam(
	connectTimeout time.Duration,
	readTimeout time.Duration,
	userAgent string,
	retryParam retry.RetryParam,
) ProbeParam {
	return ProbeParam{
		connectTimeout: connectTimeout,
		readTimeout:    readTimeout,
		userAgent:      userAgent,
		retryParam:     retryParam,
	}
}

// DefaultProbeParam returns the standard probe tuning: 60s connect
// budget, 10s header read budget, and 2 retries with doubling backoff
// on network-level failures.
func DefaultProbeParam(userAgent string) ProbeParam {
	return NewProbeParam(
		60*time.Second,
		10*time.Second,
		userAgent,
		retry.NewRetryParam(
			0,
			time.Now().UnixNano(),
			3,
			timeutil.NewBackoffParam(time.Second, 2.0, 30*time.Second),
		),
	)
}

func (p ProbeParam) ConnectTimeout() time.Duration {
	return p.connectTimeout
}

func (p ProbeParam) ReadTimeout() time.Duration {
	return p.readTimeout
}

func (p ProbeParam) UserAgent() string {
	return p.userAgent
}

func (p ProbeParam) RetryParam() retry.RetryParam {
	return p.retryParam
}
