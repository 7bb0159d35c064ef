package denylist

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

/*
Responsibilities

- Hold the catalog ignore rules (dead hosts, known-broken URLs)
- Hold the precheck exemption rules with per-entry scope
- Load rule files, with a built-in default set embedded at build time

These lists churn as monitored sites come and go; keeping them as data
means updating a file, not recompiling.
*/

//go:embed defaults.yaml
var defaultRules []byte

// Scope selects what an exemption entry is matched against.
type Scope string

const (
	// ScopeURL matches one exact URL.
	ScopeURL Scope = "url"
	// ScopeHost matches the exact hostname.
	ScopeHost Scope = "host"
	// ScopeDomain matches the hostname and everything under it.
	ScopeDomain Scope = "domain"
)

// ExemptRule exempts matching hosts from reachability prechecking:
// their URLs stay in the working set without being probed.
type ExemptRule struct {
	Value string `yaml:"value"`
	Scope Scope  `yaml:"scope"`
}

type rulesDTO struct {
	Ignore struct {
		Hosts []string `yaml:"hosts"`
		URLs  []string `yaml:"urls"`
	} `yaml:"ignore"`
	Exempt []ExemptRule `yaml:"exempt"`
}

// Rules is an immutable, loaded rule set.
type Rules struct {
	ignoreHosts map[string]struct{}
	ignoreURLs  map[string]struct{}
	exempt      []ExemptRule
}

// Default returns the rule set embedded in the binary.
func Default() Rules {
	rules, err := parse(defaultRules)
	if err != nil {
		// The embedded file is validated by tests; this cannot happen
		// in a released binary.
		panic(err)
	}
	return rules
}

// Load reads a rule file from disk.
func Load(path string) (Rules, failure.ClassifiedError) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, &RulesError{
			Message: err.Error(),
			Cause:   ErrCauseFileUnreadable,
		}
	}
	return parse(content)
}

func parse(content []byte) (Rules, failure.ClassifiedError) {
	var dto rulesDTO
	if err := yaml.Unmarshal(content, &dto); err != nil {
		return Rules{}, &RulesError{
			Message: err.Error(),
			Cause:   ErrCauseParseFail,
		}
	}

	rules := Rules{
		ignoreHosts: make(map[string]struct{}, len(dto.Ignore.Hosts)),
		ignoreURLs:  make(map[string]struct{}, len(dto.Ignore.URLs)),
		exempt:      dto.Exempt,
	}
	for _, host := range dto.Ignore.Hosts {
		rules.ignoreHosts[host] = struct{}{}
	}
	for _, url := range dto.Ignore.URLs {
		rules.ignoreURLs[url] = struct{}{}
	}

	for _, rule := range rules.exempt {
		switch rule.Scope {
		case ScopeURL, ScopeHost, ScopeDomain:
		default:
			return Rules{}, &RulesError{
				Message: fmt.Sprintf("%q for %q", rule.Scope, rule.Value),
				Cause:   ErrCauseBadScope,
			}
		}
	}

	return rules, nil
}

// Ignored reports whether a catalog URL should be dropped before it
// enters the working set.
func (r Rules) Ignored(rawURL string, host string) bool {
	if _, ok := r.ignoreURLs[rawURL]; ok {
		return true
	}
	_, ok := r.ignoreHosts[host]
	return ok
}

// ExemptHost reports whether a host group skips reachability
// prechecking. URL-scoped rules exempt the host when any of its URLs
// matches, since reachability is a host-level property.
func (r Rules) ExemptHost(host string, urls []string) bool {
	for _, rule := range r.exempt {
		switch rule.Scope {
		case ScopeHost:
			if host == rule.Value {
				return true
			}
		case ScopeDomain:
			if host == rule.Value || strings.HasSuffix(host, "."+rule.Value) {
				return true
			}
		case ScopeURL:
			for _, url := range urls {
				if url == rule.Value {
					return true
				}
			}
		}
	}
	return false
}
