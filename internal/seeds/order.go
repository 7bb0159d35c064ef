package seeds

import "github.com/edgi-govdata-archiving/seedgen/pkg/failure"

// CrawlOrder rearranges urls into a crawler-friendly order: all arcgis
// URLs first, in one contiguous run, then the rest of the domains
// interleaved round-robin.
//
// ArcGIS map viewers put enormous memory pressure on a crawling
// browser, so keeping them together makes hangs easier to contain.
// Interleaving everything else keeps the request rate per domain low.
func CrawlOrder(urls []string) ([]string, failure.ClassifiedError) {
	groups, err := Group(urls, GroupByDomain)
	if err != nil {
		return nil, err
	}

	ordered := make([]string, 0, len(urls))
	ordered = append(ordered, groups.Remove("arcgis")...)

	sequences := make([][]string, 0, groups.Len())
	for _, key := range groups.Keys() {
		sequences = append(sequences, groups.Get(key))
	}
	for url := range Interleave(sequences...) {
		ordered = append(ordered, url)
	}

	return ordered, nil
}
