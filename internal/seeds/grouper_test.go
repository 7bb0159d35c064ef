package seeds_test

import (
	"testing"

	"github.com/edgi-govdata-archiving/seedgen/internal/seeds"
)

func TestGroup_ByHost(t *testing.T) {
	urls := []string{
		"https://www.epa.gov/ozone",
		"https://www19.epa.gov/data",
		"https://www.epa.gov/water",
		"https://www.noaa.gov/climate",
	}

	groups, err := seeds.Group(urls, seeds.GroupByHost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedKeys := []string{"www.epa.gov", "www19.epa.gov", "www.noaa.gov"}
	assertKeys(t, groups, expectedKeys)

	epa := groups.Get("www.epa.gov")
	if len(epa) != 2 || epa[0] != "https://www.epa.gov/ozone" || epa[1] != "https://www.epa.gov/water" {
		t.Errorf("www.epa.gov group out of order: %v", epa)
	}
}

func TestGroup_ByDomain(t *testing.T) {
	urls := []string{
		"https://www.epa.gov/ozone",
		"https://www19.epa.gov/data",
		"https://www.noaa.gov/climate",
	}

	groups, err := seeds.Group(urls, seeds.GroupByDomain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertKeys(t, groups, []string{"epa.gov", "noaa.gov"})

	epa := groups.Get("epa.gov")
	if len(epa) != 2 {
		t.Errorf("expected 2 epa.gov URLs, got %d", len(epa))
	}
}

func TestGroup_ArcgisOverride(t *testing.T) {
	// Any host containing "arcgis" collapses to a single fixed group,
	// whatever its actual domain.
	urls := []string{
		"https://maps.arcgis.example.com/viewer",
		"https://foo.arcgis.net/map",
		"https://www.epa.gov/page",
	}

	groups, err := seeds.Group(urls, seeds.GroupByDomain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertKeys(t, groups, []string{"arcgis", "epa.gov"})

	arcgis := groups.Get("arcgis")
	if len(arcgis) != 2 {
		t.Errorf("expected 2 arcgis URLs, got %d: %v", len(arcgis), arcgis)
	}
}

func TestGroup_InvalidHostnameAborts(t *testing.T) {
	urls := []string{
		"https://www.epa.gov/fine",
		"/no/host/here",
	}

	_, err := seeds.Group(urls, seeds.GroupByDomain)
	if err == nil {
		t.Fatal("expected error for URL without hostname")
	}
}

func TestGroup_UnknownMode(t *testing.T) {
	_, err := seeds.Group([]string{"https://example.gov/"}, seeds.GroupBy(99))
	if err == nil {
		t.Fatal("expected error for unknown grouping mode")
	}
}

func TestGroup_FlattenedOutputEqualsInput(t *testing.T) {
	// Flattening all groups back together in group-then-intra-group
	// order must yield the same multiset as the input.
	urls := []string{
		"https://a.gov/1",
		"https://b.gov/1",
		"https://a.gov/2",
		"https://c.com/1",
		"https://b.gov/2",
	}

	groups, err := seeds.Group(urls, seeds.GroupByDomain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var flattened []string
	for _, key := range groups.Keys() {
		flattened = append(flattened, groups.Get(key)...)
	}

	if len(flattened) != len(urls) {
		t.Fatalf("expected %d URLs after flattening, got %d", len(urls), len(flattened))
	}

	counts := make(map[string]int)
	for _, url := range urls {
		counts[url]++
	}
	for _, url := range flattened {
		counts[url]--
	}
	for url, count := range counts {
		if count != 0 {
			t.Errorf("URL %q count off by %d after flattening", url, count)
		}
	}
}

func TestGroups_Remove(t *testing.T) {
	groups := seeds.NewGroups()
	groups.Add("a.gov", "https://a.gov/1")
	groups.Add("b.gov", "https://b.gov/1")
	groups.Add("c.gov", "https://c.gov/1")

	removed := groups.Remove("b.gov")
	if len(removed) != 1 || removed[0] != "https://b.gov/1" {
		t.Errorf("unexpected removed URLs: %v", removed)
	}

	assertKeys(t, groups, []string{"a.gov", "c.gov"})

	if groups.Remove("missing") != nil {
		t.Error("removing an absent group should return nil")
	}
}

func assertKeys(t *testing.T, groups *seeds.Groups, expected []string) {
	t.Helper()
	keys := groups.Keys()
	if len(keys) != len(expected) {
		t.Fatalf("expected keys %v, got %v", expected, keys)
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Fatalf("expected keys %v, got %v", expected, keys)
		}
	}
}
