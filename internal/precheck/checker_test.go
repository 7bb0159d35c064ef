package precheck_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edgi-govdata-archiving/seedgen/internal/precheck"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

// scriptedProber returns a scripted verdict per URL. It is shared by
// all workers, so call recording is guarded.
type scriptedProber struct {
	mu       sync.Mutex
	verdicts map[string]string // url -> verdict; absent means reachable
	calls    map[string]int
}

func newScriptedProber() *scriptedProber {
	return &scriptedProber{
		verdicts: make(map[string]string),
		calls:    make(map[string]int),
	}
}

func (p *scriptedProber) Probe(_ context.Context, rawURL string) failure.ClassifiedError {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[rawURL]++
	if verdict, ok := p.verdicts[rawURL]; ok {
		return &precheck.ProbeError{
			Message:   "scripted failure",
			Retryable: true,
			Verdict:   verdict,
		}
	}
	return nil
}

func (p *scriptedProber) callCount(rawURL string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[rawURL]
}

type hostSetExempter struct {
	hosts map[string]bool
}

func (e *hostSetExempter) ExemptHost(host string, _ []string) bool {
	return e.hosts[host]
}

func newChecker(workers int, prober *scriptedProber, exempter precheck.Exempter) *precheck.Checker {
	return precheck.NewChecker(
		workers,
		func() precheck.Prober { return prober },
		exempter,
		zap.NewNop(),
	)
}

func TestCheck_PartitionsByVerdict(t *testing.T) {
	urls := []string{
		"https://ok.example.gov/a",
		"https://ok.example.gov/b",
		"https://gone.example.gov/x",
		"https://gone.example.gov/y",
		"https://slow.example.gov/z",
		"https://reset.example.gov/r",
		"https://flaky.example.gov/f",
	}

	prober := newScriptedProber()
	prober.verdicts["https://gone.example.gov/x"] = precheck.VerdictNameNotResolved
	prober.verdicts["https://slow.example.gov/z"] = precheck.VerdictTimeout
	prober.verdicts["https://reset.example.gov/r"] = precheck.VerdictConnectionReset
	// flaky.example.gov gets no script entry: its probe "succeeds"
	// (an unclassified failure looks the same from out here).

	reachable, log, err := newChecker(3, prober, nil).Check(context.Background(), urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedReachable := []string{
		"https://ok.example.gov/a",
		"https://ok.example.gov/b",
		"https://flaky.example.gov/f",
	}
	if len(reachable) != len(expectedReachable) {
		t.Fatalf("expected reachable %v, got %v", expectedReachable, reachable)
	}
	for i, url := range expectedReachable {
		if reachable[i] != url {
			t.Fatalf("expected reachable %v, got %v", expectedReachable, reachable)
		}
	}

	if len(log) != 5 {
		t.Fatalf("expected 5 log entries, got %d", len(log))
	}

	expectedVerdicts := map[string]string{
		"ok.example.gov":    "",
		"gone.example.gov":  precheck.VerdictNameNotResolved,
		"slow.example.gov":  precheck.VerdictTimeout,
		"reset.example.gov": precheck.VerdictConnectionReset,
		"flaky.example.gov": "",
	}
	for host, verdict := range expectedVerdicts {
		entry, ok := log[host]
		if !ok {
			t.Errorf("missing log entry for %s", host)
			continue
		}
		if verdict == "" {
			if entry.Error != nil {
				t.Errorf("%s: expected no error, got %q", host, *entry.Error)
			}
			if len(entry.URLs) != 0 {
				t.Errorf("%s: reachable entry must keep an empty URL list, got %v", host, entry.URLs)
			}
		} else {
			if entry.Error == nil || *entry.Error != verdict {
				t.Errorf("%s: expected error %q, got %v", host, verdict, entry.Error)
			}
		}
	}

	// Unreachable entries carry every URL of the host, not just the
	// probed representative.
	gone := log["gone.example.gov"]
	if len(gone.URLs) != 2 {
		t.Errorf("expected 2 URLs for gone.example.gov, got %v", gone.URLs)
	}
}

func TestCheck_ProbesOneRepresentativePerHost(t *testing.T) {
	urls := []string{
		"https://a.example.gov/1",
		"https://a.example.gov/2",
		"https://a.example.gov/3",
		"https://b.example.gov/1",
	}

	prober := newScriptedProber()
	if _, _, err := newChecker(2, prober, nil).Check(context.Background(), urls); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := prober.callCount("https://a.example.gov/1"); count != 1 {
		t.Errorf("expected 1 probe of the first URL, got %d", count)
	}
	for _, url := range []string{"https://a.example.gov/2", "https://a.example.gov/3"} {
		if count := prober.callCount(url); count != 0 {
			t.Errorf("expected no probe of %s, got %d", url, count)
		}
	}
	if count := prober.callCount("https://b.example.gov/1"); count != 1 {
		t.Errorf("expected 1 probe of b.example.gov, got %d", count)
	}
}

func TestCheck_ExemptHostSkipsProbing(t *testing.T) {
	urls := []string{
		"https://fragile.example.gov/1",
		"https://fragile.example.gov/2",
		"https://ok.example.gov/1",
	}

	prober := newScriptedProber()
	// Would be unreachable if probed; exemption must keep it anyway.
	prober.verdicts["https://fragile.example.gov/1"] = precheck.VerdictTimeout

	exempter := &hostSetExempter{hosts: map[string]bool{"fragile.example.gov": true}}
	reachable, log, err := newChecker(2, prober, exempter).Check(context.Background(), urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := prober.callCount("https://fragile.example.gov/1"); count != 0 {
		t.Errorf("exempt host was probed %d times", count)
	}
	if len(reachable) != 3 {
		t.Errorf("expected all 3 URLs kept, got %v", reachable)
	}
	if _, ok := log["fragile.example.gov"]; ok {
		t.Error("exempt host must not appear in the log")
	}
	if _, ok := log["ok.example.gov"]; !ok {
		t.Error("probed host missing from the log")
	}
}

func TestCheck_ResultOrderIndependentOfCompletionOrder(t *testing.T) {
	// Many hosts, high worker count: completion order will scramble,
	// output order must not.
	var urls []string
	hosts := []string{"e", "a", "c", "b", "d", "g", "f", "h", "j", "i"}
	for _, h := range hosts {
		urls = append(urls,
			"https://"+h+".example.gov/1",
			"https://"+h+".example.gov/2",
		)
	}

	prober := newScriptedProber()
	first, _, err := newChecker(8, prober, nil).Check(context.Background(), urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := newChecker(8, prober, nil).Check(context.Background(), urls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(urls) || len(second) != len(urls) {
		t.Fatalf("expected %d URLs, got %d and %d", len(urls), len(first), len(second))
	}
	for i := range first {
		if first[i] != urls[i] {
			t.Fatalf("reachable order diverged from input order at %d: %q", i, first[i])
		}
		if second[i] != first[i] {
			t.Fatalf("runs disagree at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestCheck_LogTimestampIsUTCWithZSuffix(t *testing.T) {
	prober := newScriptedProber()
	_, log, err := newChecker(1, prober, nil).Check(
		context.Background(),
		[]string{"https://ok.example.gov/1"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := log["ok.example.gov"]
	parsed, perr := time.Parse(time.RFC3339, entry.Timestamp)
	if perr != nil {
		t.Fatalf("timestamp %q does not parse as RFC 3339: %v", entry.Timestamp, perr)
	}
	if entry.Timestamp[len(entry.Timestamp)-1] != 'Z' {
		t.Errorf("timestamp %q must end in Z", entry.Timestamp)
	}
	if time.Since(parsed) > time.Minute {
		t.Errorf("timestamp %q is not recent", entry.Timestamp)
	}
}

func TestCheck_InvalidURLAborts(t *testing.T) {
	prober := newScriptedProber()
	_, _, err := newChecker(1, prober, nil).Check(
		context.Background(),
		[]string{"https://ok.example.gov/1", "/no/host"},
	)
	if err == nil {
		t.Fatal("expected error for URL without hostname")
	}
}
