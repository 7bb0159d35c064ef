package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Hostname extracts the hostname of a raw URL, lowercased, with the port,
// userinfo and IPv6 brackets stripped. It returns an error when the URL
// does not parse or carries no host component at all.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
func Hostname(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", rawURL, err)
	}

	host := parsed.Hostname()
	if host == "" {
		return "", fmt.Errorf("no hostname in %q", rawURL)
	}

	return lowerASCII(host), nil
}

// RegistrableDomain reduces a hostname to its last two labels, a cheap
// approximation of the registrable domain: "www.epa.gov" becomes "epa.gov".
// Hostnames with fewer than two labels are returned unchanged.
//
// This deliberately ignores multi-label public suffixes such as "co.uk";
// the hosts this tool deals with are overwhelmingly under simple TLDs.
func RegistrableDomain(hostname string) string {
	labels := strings.Split(hostname, ".")
	if len(labels) <= 2 {
		return hostname
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
