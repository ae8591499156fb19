// Package youtube provides a client for the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/joonho0410/StellaClip-sub001/pkg/retry"
)

const defaultBaseURL = "https://www.googleapis.com"

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRetryConfig overrides the retry policy.
func WithRetryConfig(cfg retry.Config) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// Client is a YouTube Data API client authenticated by API key.
// Requests are paced to stay inside the daily quota.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	limiter    *rate.Limiter
	retry      retry.Config
}

// NewClient creates a new YouTube API client with the given API key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(2), 4), // 2 req/s, burst 4
		retry:      retry.DefaultConfig,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx response from the Data API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube api: status %d", e.StatusCode)
}

// Transient reports whether the error is worth retrying (quota pressure,
// server-side failures). Other 4xx responses are terminal.
func (e *APIError) Transient() bool {
	return retry.RetryableStatus(e.StatusCode)
}

// SearchVideos runs a search for the given query and resolves the hits into
// full video resources with snippet, contentDetails and statistics parts.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]VideoResource, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("order", "date")
	params.Set("type", "video")
	searchURL := fmt.Sprintf("%s/youtube/v3/search?%s", c.baseURL, params.Encode())

	body, err := c.doRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}

	if len(searchResp.Items) == 0 {
		return []VideoResource{}, nil
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	return c.FetchVideos(ctx, ids)
}

// FetchVideos resolves video IDs into full video resources.
func (c *Client) FetchVideos(ctx context.Context, ids []string) ([]VideoResource, error) {
	if len(ids) == 0 {
		return []VideoResource{}, nil
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	videosURL := fmt.Sprintf("%s/youtube/v3/videos?%s", c.baseURL, params.Encode())

	body, err := c.doRequest(ctx, videosURL)
	if err != nil {
		return nil, err
	}

	var videosResp videosResponse
	if err := json.Unmarshal(body, &videosResp); err != nil {
		return nil, fmt.Errorf("parse videos response: %w", err)
	}

	if videosResp.Items == nil {
		return []VideoResource{}, nil
	}
	return videosResp.Items, nil
}

// doRequest performs one GET with quota pacing and retry on transient
// failures. The API key is appended here so it never appears in callers.
func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	return retry.Do(ctx, c.retry, func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"&key="+url.QueryEscape(c.apiKey), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, &APIError{StatusCode: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return body, nil
	})
}
