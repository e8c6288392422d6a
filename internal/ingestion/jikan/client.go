package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"animehub/internal/catalog"

	"golang.org/x/time/rate"
)

const defaultAPIURL = "https://api.jikan.moe/v4"

// ErrSeasonNotFound marks a season the API has no data for (404). Callers
// treat it as an empty season, not a failure.
var ErrSeasonNotFound = fmt.Errorf("season not found")

// Client fetches seasonal listings from the Jikan API with rate limiting.
// Jikan throttles aggressively; one request every couple of seconds keeps
// long historical syncs under the limit.
type Client struct {
	apiURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

type ClientOption func(*Client)

func WithAPIURL(url string) ClientOption {
	return func(c *Client) { c.apiURL = url }
}

func WithRequestInterval(interval time.Duration) ClientOption {
	return func(c *Client) { c.rateLimiter = rate.NewLimiter(rate.Every(interval), 1) }
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		apiURL:      defaultAPIURL,
		rateLimiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// seasonPage fetches one page of a season's listing.
func (c *Client) seasonPage(ctx context.Context, year int, season catalog.Season, page int) (*seasonResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/seasons/%d/%s?page=%d", c.apiURL, year, season, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSeasonNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", url, resp.StatusCode, string(body))
	}

	var parsed seasonResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return &parsed, nil
}

// Season walks every page of a season and returns the converted TV
// entries, deduplicated by mal_id across pages. A 404 on the first page
// returns ErrSeasonNotFound; later pages end the walk.
func (c *Client) Season(ctx context.Context, year int, season catalog.Season) ([]catalog.Anime, error) {
	var records []catalog.Anime
	seen := make(map[int64]bool)

	for page := 1; ; page++ {
		resp, err := c.seasonPage(ctx, year, season, page)
		if err != nil {
			if err == ErrSeasonNotFound && page > 1 {
				break
			}
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		for _, raw := range resp.Data {
			if seen[raw.MalID] {
				continue
			}
			// Only TV series make the catalog; movies, OVAs and specials
			// are skipped.
			if raw.Type != "TV" {
				continue
			}
			seen[raw.MalID] = true
			records = append(records, convert(raw))
		}
		if !resp.Pagination.HasNextPage {
			break
		}
	}
	return records, nil
}
