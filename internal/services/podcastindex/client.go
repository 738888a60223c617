package podcastindex

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client handles communication with the Podcast Index API
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	apiKey     string
	apiSecret  string
	userAgent  string
}

// Config holds configuration for the Podcast Index client
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RateLimit is the maximum number of API requests per second.
	// Zero disables client-side rate limiting.
	RateLimit float64
}

// NewClient creates a new Podcast Index API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.podcastindex.org/api/1.0"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "subcast/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		userAgent:  cfg.UserAgent,
	}
}

// makeAPIRequest performs a signed GET request against the API and decodes
// the JSON response into result.
func (c *Client) makeAPIRequest(ctx context.Context, endpoint string, result interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	fullURL := fmt.Sprintf("%s/%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	signRequest(req, c.apiKey, c.apiSecret, c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] Podcast Index API returned status %d for %s", resp.StatusCode, fullURL)
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// GetPodcastByFeedURL fetches the canonical feed metadata for a feed URL
func (c *Client) GetPodcastByFeedURL(ctx context.Context, feedURL string) (*Podcast, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("feed URL cannot be empty")
	}

	params := url.Values{}
	params.Set("url", feedURL)

	endpoint := fmt.Sprintf("podcasts/byfeedurl?%s", params.Encode())

	var podcastResp PodcastByFeedURLResponse
	if err := c.makeAPIRequest(ctx, endpoint, &podcastResp); err != nil {
		return nil, err
	}

	if podcastResp.Status != "true" || podcastResp.Feed.ID == 0 {
		return nil, fmt.Errorf("podcast not found in index: %s", podcastResp.Description)
	}

	return &podcastResp.Feed, nil
}

// GetEpisodesByFeedURL fetches episodes for a podcast by feed URL
func (c *Client) GetEpisodesByFeedURL(ctx context.Context, feedURL string, limit int) ([]Episode, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("feed URL cannot be empty")
	}

	params := url.Values{}
	params.Set("url", feedURL)
	if limit > 0 {
		params.Set("max", fmt.Sprintf("%d", limit))
	}

	endpoint := fmt.Sprintf("episodes/byfeedurl?%s", params.Encode())

	var episodesResp EpisodesResponse
	if err := c.makeAPIRequest(ctx, endpoint, &episodesResp); err != nil {
		return nil, err
	}

	if episodesResp.Status != "true" {
		return nil, fmt.Errorf("API error: %s", episodesResp.Description)
	}

	return episodesResp.Items, nil
}
