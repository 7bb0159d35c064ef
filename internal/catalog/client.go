package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/edgi-govdata-archiving/seedgen/internal/denylist"
	"github.com/edgi-govdata-archiving/seedgen/pkg/failure"
	"github.com/edgi-govdata-archiving/seedgen/pkg/urlutil"
)

/*
Responsibilities

- Query the monitoring database for active page URLs, paginated
- Apply pattern / anti-pattern filtering
- Drop URLs matched by the ignore rules before they enter the pipeline

The client paces its page requests with a rate limiter: the catalog is
a shared production service and a full listing is thousands of pages.
*/

// Client talks to a web-monitoring-db instance.
type Client struct {
	settings   Settings
	rules      denylist.Rules
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(settings Settings, rules denylist.Rules, logger *zap.Logger) *Client {
	return &Client{
		settings: settings,
		rules:    rules,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(settings.RequestsPerSecond()), 1),
		logger:  logger,
	}
}

type pageRecord struct {
	URL string `json:"url"`
}

type pagesResponse struct {
	Data  []pageRecord `json:"data"`
	Links struct {
		Next *string `json:"next"`
	} `json:"links"`
}

// ActiveURLs lists the URLs of all active pages in the catalog. A
// pattern is passed to the server as a URL filter; a pattern starting
// with "!" is an anti-pattern: the catalog is queried unfiltered and
// matching URLs are dropped locally ("*" matches anything, the whole
// string must match).
func (c *Client) ActiveURLs(ctx context.Context, pattern string) ([]string, failure.ClassifiedError) {
	// TODO: pattern negation support should be built into the API.
	var antipattern *regexp.Regexp
	if strings.HasPrefix(pattern, "!") {
		expr := "^" + strings.ReplaceAll(pattern[1:], "*", ".*") + "$"
		compiled, err := regexp.Compile(expr)
		if err != nil {
			return nil, &CatalogError{
				Message: fmt.Sprintf("%q: %v", pattern, err),
				Cause:   ErrCauseBadPattern,
			}
		}
		antipattern = compiled
		pattern = ""
	}

	query := url.Values{}
	query.Set("active", "true")
	query.Set("chunk_size", fmt.Sprintf("%d", c.settings.ChunkSize()))
	if pattern != "" {
		query.Set("url", pattern)
	}
	next := c.settings.BaseURL() + "/api/v0/pages?" + query.Encode()

	var urls []string
	ignored := 0
	for next != "" {
		var page pagesResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		for _, record := range page.Data {
			if antipattern != nil && antipattern.MatchString(record.URL) {
				continue
			}

			// A catalog URL without a hostname is passed through so
			// the grouper can abort with its data-integrity error.
			host, _ := urlutil.Hostname(record.URL)
			if c.rules.Ignored(record.URL, host) {
				ignored++
				continue
			}
			urls = append(urls, record.URL)
		}

		if page.Links.Next == nil {
			break
		}
		next = *page.Links.Next
	}

	c.logger.Info("listed active catalog URLs",
		zap.Int("urls", len(urls)),
		zap.Int("ignored", ignored),
	)
	return urls, nil
}

// getJSON performs one paced, authenticated GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, requestURL string, out any) failure.ClassifiedError {
	if err := c.limiter.Wait(ctx); err != nil {
		return &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &CatalogError{
			Message: fmt.Sprintf("%s from %s", resp.Status, requestURL),
			Cause:   ErrCauseUnexpectedStatus,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &CatalogError{
			Message: err.Error(),
			Cause:   ErrCauseBadResponse,
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.settings.Email() != "" {
		req.SetBasicAuth(c.settings.Email(), c.settings.Password())
	}
}
