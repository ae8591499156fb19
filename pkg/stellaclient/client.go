// Package stellaclient coordinates fetches against the StellaClip search
// endpoint for a client-resident filter selection.
//
// It keeps a per-filter-key result cache with a staleness window, retries
// transient failures with exponential backoff, and guarantees that the
// last-applied selection wins: a response arriving for a selection that has
// been superseded is discarded instead of overwriting the current view.
package stellaclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/joonho0410/StellaClip-sub001/pkg/filterstore"
	"github.com/joonho0410/StellaClip-sub001/pkg/retry"
)

// DefaultStaleAfter is how long a cached page stays fresh.
const DefaultStaleAfter = 5 * time.Minute

// ErrSuperseded reports that the selection changed while a fetch was in
// flight; the late result was discarded.
var ErrSuperseded = errors.New("selection superseded while fetching")

// StatusError is a non-2xx response with its HTTP status attached, so the
// retry policy can classify it.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search endpoint: status %d", e.Code)
}

// Transient reports whether the status is retryable; 4xx responses other
// than 429 are terminal and surface immediately.
func (e *StatusError) Transient() bool {
	return retry.RetryableStatus(e.Code)
}

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithStaleAfter overrides the cache staleness window.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Client) { c.staleAfter = d }
}

type cacheEntry struct {
	result    *SearchResult
	fetchedAt time.Time
}

// Client is the caching fetch coordinator.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	retry      retry.Config
	staleAfter time.Duration
	now        func() time.Time

	mu         sync.Mutex
	cache      map[string]cacheEntry
	currentKey string
	view       *SearchResult
}

// NewClient creates a coordinator for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		retry:      retry.DefaultConfig,
		staleAfter: DefaultStaleAfter,
		now:        time.Now,
		cache:      make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key derives the cache key for a selection.
func Key(sel filterstore.Selection) string {
	return fmt.Sprintf("%s|%s|%s|%d", sel.Cohort, sel.Member, sel.Sort, sel.Page)
}

// Select makes sel the active selection and returns its result set: from
// cache when an entry is younger than the staleness window, otherwise from
// the network. If another Select supersedes this one before its response
// arrives, the response is discarded and ErrSuperseded is returned. On
// failure the previously displayed data is left untouched.
func (c *Client) Select(ctx context.Context, sel filterstore.Selection) (*SearchResult, error) {
	key := Key(sel)

	c.mu.Lock()
	c.currentKey = key
	if entry, ok := c.cache[key]; ok && c.now().Sub(entry.fetchedAt) < c.staleAfter {
		c.view = entry.result
		c.mu.Unlock()
		return entry.result, nil
	}
	c.mu.Unlock()

	result, err := c.fetch(ctx, sel)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentKey != key {
		// A later selection won; this result no longer matters.
		return nil, ErrSuperseded
	}
	if err != nil {
		// Stale-while-revalidate: keep showing the last good data.
		return nil, err
	}

	c.cache[key] = cacheEntry{result: result, fetchedAt: c.now()}
	c.view = result
	return result, nil
}

// View returns the last successfully applied result set, or nil before the
// first fetch. It stays populated across transient failures.
func (c *Client) View() *SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Invalidate drops every cached page, forcing the next Select to refetch.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

func (c *Client) fetch(ctx context.Context, sel filterstore.Selection) (*SearchResult, error) {
	perPage := sel.PerPage
	if perPage <= 0 {
		perPage = filterstore.DefaultPerPage
	}

	params := filterstore.QueryParams(sel)
	params.Del("page")
	params.Set("limit", strconv.Itoa(perPage))
	params.Set("offset", strconv.Itoa((max(sel.Page, 1)-1)*perPage))

	requestURL := c.baseURL + "/api/videos?" + params.Encode()

	return retry.Do(ctx, c.retry, func() (*SearchResult, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, &StatusError{Code: resp.StatusCode}
		}

		var result SearchResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		if result.Videos == nil {
			result.Videos = []Video{}
		}
		return &result, nil
	})
}
