package format

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
)

/*
Responsibilities

- Render an ordered URL sequence into a seed document
- text: a sorted plain list, one URL per line
- browsertrix: a crawler config document with the URLs as seeds

The formatter never reorders browsertrix seeds; crawl-order
optimization is the caller's concern.
*/

// Render produces the seed document for the requested format.
func Render(format string, urls []string, opts Options) (string, failure.ClassifiedError) {
	switch format {
	case FormatText:
		return renderText(urls), nil
	case FormatBrowsertrix:
		return renderBrowsertrix(urls, opts)
	default:
		return "", &FormatError{
			Message: fmt.Sprintf("%q", format),
			Cause:   ErrCauseUnknownFormat,
		}
	}
}

// Extension returns the file extension for seed files of a format.
func Extension(format string) (string, failure.ClassifiedError) {
	switch format {
	case FormatText:
		return "txt", nil
	case FormatBrowsertrix:
		return "yaml", nil
	default:
		return "", &FormatError{
			Message: fmt.Sprintf("%q", format),
			Cause:   ErrCauseUnknownFormat,
		}
	}
}

func renderText(urls []string) string {
	sorted := make([]string, len(urls))
	copy(sorted, urls)
	sort.Strings(sorted)

	var builder strings.Builder
	for _, url := range sorted {
		builder.WriteString(url)
		builder.WriteByte('\n')
	}
	return builder.String()
}

func renderBrowsertrix(urls []string, opts Options) (string, failure.ClassifiedError) {
	doc := map[string]any{
		"workers":          opts.Workers(),
		"saveStateHistory": opts.SaveStateHistory(),
		"scopeType":        "page",
		"rolloverSize":     int64(8_000_000_000),
		"pageLoadTimeout":  opts.PageLoadTimeout(),
	}

	warcinfo := map[string]any{
		"operator": opts.Operator(),
	}
	for key, value := range opts.Overrides() {
		if key == "warcinfo" {
			if extra, ok := value.(map[string]any); ok {
				for k, v := range extra {
					warcinfo[k] = v
				}
			}
			continue
		}
		doc[key] = value
	}
	doc["warcinfo"] = warcinfo
	doc["seeds"] = seedEntries(urls)

	encoded, err := yaml.Marshal(doc)
	if err != nil {
		return "", &FormatError{
			Message: err.Error(),
			Cause:   ErrCauseEncodingFail,
		}
	}
	return string(encoded), nil
}

// seedEntries converts URLs to browsertrix seed values. A URL carrying
// a fragment marker points at a single-page-application view: the
// crawler must capture exactly that page and not expand scope from it.
func seedEntries(urls []string) []any {
	entries := make([]any, 0, len(urls))
	for _, url := range urls {
		if strings.Contains(url, "#") {
			entries = append(entries, map[string]any{
				"url":       url,
				"scopeType": "page-spa",
				"depth":     0,
			})
		} else {
			entries = append(entries, url)
		}
	}
	return entries
}
