package bangumi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	defaultAPIURL = "https://api.bgm.tv"
	defaultWebURL = "https://bgm.tv"

	// The browser pages sit behind a bot check, so requests carry a
	// desktop browser User-Agent. The API instead wants a project
	// identifier per the bgm.tv API guidelines.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	apiUserAgent     = "animehub/1.0 (catalog sync)"
)

// ErrSubjectNotFound marks a subject id the API has no record for.
var ErrSubjectNotFound = fmt.Errorf("subject not found")

// Client scrapes bgm.tv browser listings for subject ids and fetches
// subject details from the Bangumi API, sharing one rate limiter.
type Client struct {
	apiURL      string
	webURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

type ClientOption func(*Client)

func WithAPIURL(url string) ClientOption {
	return func(c *Client) { c.apiURL = url }
}

func WithWebURL(url string) ClientOption {
	return func(c *Client) { c.webURL = url }
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
		webURL:      defaultWebURL,
		rateLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
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

func (c *Client) get(ctx context.Context, url, userAgent string) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return resp, nil
}

// SubjectIDs walks every page of the Japanese TV browser listing for one
// year-month and returns the subject ids found, in page order.
func (c *Client) SubjectIDs(ctx context.Context, year, month int) ([]int64, error) {
	var ids []int64
	for page := 1; ; page++ {
		pageIDs, err := c.subjectIDPage(ctx, year, month, page)
		if err != nil {
			return nil, err
		}
		if len(pageIDs) == 0 {
			break
		}
		ids = append(ids, pageIDs...)
	}
	return ids, nil
}

func (c *Client) subjectIDPage(ctx context.Context, year, month, page int) ([]int64, error) {
	listURL := fmt.Sprintf("%s/anime/browser/%s/tv/airtime/%d-%d?page=%d",
		c.webURL, url.PathEscape("日本"), year, month, page)

	resp, err := c.get(ctx, listURL, browserUserAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", listURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", listURL, err)
	}

	var ids []int64
	doc.Find("li[id^=item_]").Each(func(_ int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok {
			return
		}
		n, err := strconv.ParseInt(strings.TrimPrefix(id, "item_"), 10, 64)
		if err != nil {
			return
		}
		ids = append(ids, n)
	})
	return ids, nil
}

// Subject fetches one subject's details from the Bangumi API.
func (c *Client) Subject(ctx context.Context, id int64) (*subject, error) {
	subjectURL := fmt.Sprintf("%s/v0/subjects/%d", c.apiURL, id)

	resp, err := c.get(ctx, subjectURL, apiUserAgent)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSubjectNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", subjectURL, resp.StatusCode, string(body))
	}

	var parsed subject
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode %s: %w", subjectURL, err)
	}
	return &parsed, nil
}
