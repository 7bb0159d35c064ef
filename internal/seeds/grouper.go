package seeds

import (
	"fmt"
	"strings"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/urlutil"
)

/*
Responsibilities

- Partition URL sequences into named groups by host or registrable domain
- Preserve input order within a group and first-appearance order across groups
- Reject URLs without a parseable hostname

The grouper never fetches anything; it only looks at the host portion
of each URL string.
*/

// Group partitions urls into a Groups keyed per the by mode. Every URL
// lands in exactly one group. A URL with no parseable hostname aborts
// the whole call: dropping it silently would desync the seed lists
// from the catalog.
func Group(urls []string, by GroupBy) (*Groups, failure.ClassifiedError) {
	if by != GroupByHost && by != GroupByDomain {
		return nil, &SeedError{
			Message: fmt.Sprintf("mode %d", by),
			Cause:   ErrCauseUnknownGroupBy,
		}
	}

	groups := NewGroups()
	for _, rawURL := range urls {
		hostname, err := urlutil.Hostname(rawURL)
		if err != nil {
			return nil, &SeedError{
				Message: err.Error(),
				Cause:   ErrCauseInvalidHostname,
			}
		}

		key := hostname
		if by == GroupByDomain {
			key = domainKey(hostname)
		}
		groups.Add(key, rawURL)
	}

	return groups, nil
}

// domainKey reduces a hostname to its grouping domain. Any host with
// "arcgis" anywhere in it collapses to the fixed key "arcgis" so those
// URLs end up batched together (see GroupByDomain).
func domainKey(hostname string) string {
	if strings.Contains(hostname, "arcgis") {
		return "arcgis"
	}
	return urlutil.RegistrableDomain(hostname)
}
