package seeds

// Grouping and packing value types

// GroupBy selects how a URL is assigned to a group key.
type GroupBy int

const (
	// GroupByHost keys a URL by its full hostname ("www.epa.gov").
	GroupByHost GroupBy = iota
	// GroupByDomain keys a URL by its registrable domain ("epa.gov"),
	// except that any host containing "arcgis" collapses to the fixed
	// key "arcgis". ArcGIS map viewers are disproportionately expensive
	// to crawl and must be batched together regardless of domain.
	GroupByDomain
)

// Groups is an insertion-ordered map from group key to the URLs that
// share that key. Key iteration order is first-appearance order and
// URL order within a group is input order, so every downstream step
// (interleaving, packing) is deterministic given the same input.
type Groups struct {
	keys []string
	urls map[string][]string
}

func NewGroups() *Groups {
	return &Groups{
		urls: make(map[string][]string),
	}
}

// Add appends url to the group identified by key, creating the group
// at the end of the iteration order if it does not exist yet.
func (g *Groups) Add(key string, url string) {
	if _, ok := g.urls[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.urls[key] = append(g.urls[key], url)
}

// Keys returns the group keys in first-appearance order.
func (g *Groups) Keys() []string {
	keys := make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Get returns the URLs of a group in insertion order, or nil when the
// group does not exist.
func (g *Groups) Get(key string) []string {
	stored, ok := g.urls[key]
	if !ok {
		return nil
	}
	urls := make([]string, len(stored))
	copy(urls, stored)
	return urls
}

func (g *Groups) Has(key string) bool {
	_, ok := g.urls[key]
	return ok
}

// Remove deletes a group and returns its URLs. The iteration order of
// the remaining groups is unchanged.
func (g *Groups) Remove(key string) []string {
	urls, ok := g.urls[key]
	if !ok {
		return nil
	}
	delete(g.urls, key)
	for i, k := range g.keys {
		if k == key {
			g.keys = append(g.keys[:i], g.keys[i+1:]...)
			break
		}
	}
	return urls
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Total returns the number of URLs across all groups.
func (g *Groups) Total() int {
	total := 0
	for _, urls := range g.urls {
		total += len(urls)
	}
	return total
}

// Batch is one output seed list's worth of URLs.
type Batch struct {
	name     string
	urls     []string
	isolated bool
}

// NewBatch creates a Batch. isolated marks batches holding a slice of a
// single oversized group; those are crawled with a single worker since
// all requests hit one domain anyway.
func NewBatch(name string, urls []string, isolated bool) Batch {
	return Batch{
		name:     name,
		urls:     urls,
		isolated: isolated,
	}
}

func (b Batch) Name() string {
	return b.name
}

func (b Batch) URLs() []string {
	urls := make([]string, len(b.urls))
	copy(urls, b.urls)
	return urls
}

func (b Batch) Isolated() bool {
	return b.isolated
}
