package precheck

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/retry"
)

/*
Responsibilities

- Perform one full content-fetching GET against a representative URL
- Classify network-level failures into the three verdict strings
- Retry only classified network failures, never HTTP statuses

Probe Semantics

- Any HTTP response, success or error status, proves the host answered
  and counts as reachable
- Failures outside the three classes (TLS faults, read timeouts,
  refused connections) may be artifacts of this client rather than true
  unreachability; a real browser might still succeed, so they also
  count as reachable
*/

// Prober checks whether the host behind a URL answers at all. A nil
// return means reachable; a *ProbeError carries the verdict otherwise.
type Prober interface {
	Probe(ctx context.Context, rawURL string) failure.ClassifiedError
}

// HTTPProber probes with its own private http.Client. Construct one
// per worker: the client's connection state is never shared.
type HTTPProber struct {
	param  ProbeParam
	client *http.Client
}

func NewHTTPProber(param ProbeParam) *HTTPProber {
	return &HTTPProber{
		param: param,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: param.ConnectTimeout(),
				}).DialContext,
				ResponseHeaderTimeout: param.ReadTimeout(),
			},
		},
	}
}

func (p *HTTPProber) Probe(ctx context.Context, rawURL string) failure.ClassifiedError {
	probeTask := func() (struct{}, failure.ClassifiedError) {
		return struct{}{}, p.performProbe(ctx, rawURL)
	}

	_, err := retry.Retry(p.param.RetryParam(), probeTask)
	if err == nil {
		return nil
	}

	// After the budget runs out the classification of the final attempt
	// is what matters, not the fact that retries were exhausted.
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr
	}
	return err
}

func (p *HTTPProber) performProbe(ctx context.Context, rawURL string) failure.ClassifiedError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		// The URL survived grouping, so this is a client-side artifact.
		return nil
	}
	req.Header.Set("User-Agent", p.param.UserAgent())

	resp, err := p.client.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	// Drain the body: this is deliberately a full content fetch, not a
	// HEAD or ranged check, because some of the monitored servers
	// misbehave on lightweight requests. A reset mid-body still counts.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return classify(err)
	}

	return nil
}

// classify maps a transport error onto one of the three verdicts.
// Everything that does not match returns nil and the host is treated
// as reachable.
func classify(err error) failure.ClassifiedError {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ProbeError{
			Message:   err.Error(),
			Retryable: true,
			Verdict:   VerdictNameNotResolved,
		}
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return &ProbeError{
			Message:   err.Error(),
			Retryable: true,
			Verdict:   VerdictConnectionReset,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout() {
		return &ProbeError{
			Message:   err.Error(),
			Retryable: true,
			Verdict:   VerdictTimeout,
		}
	}

	return nil
}
