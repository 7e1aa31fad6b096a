package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	defaultTimeout      = 10 * time.Second
)

// TMDBConfig holds configuration for the TMDB client
type TMDBConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

// TMDBClient is a Finder backed by The Movie Database HTTP API
type TMDBClient struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
	apiKey       string
}

var _ Finder = (*TMDBClient)(nil)

// NewTMDBClient creates a TMDB-backed Finder
func NewTMDBClient(cfg TMDBConfig) *TMDBClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = defaultImageBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &TMDBClient{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
	}
}

// tmdbMovie is the wire shape of a movie in TMDB responses
type tmdbMovie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
}

// tmdbSearchResponse is the wire shape of a search response
type tmdbSearchResponse struct {
	Results []tmdbMovie `json:"results"`
}

// Search returns movies matching the query, in TMDB's relevance order
func (c *TMDBClient) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(query))

	var resp tmdbSearchResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}

	results := make([]Result, 0, len(resp.Results))
	for _, m := range resp.Results {
		results = append(results, c.toResult(m))
	}
	return results, nil
}

// Lookup returns the movie with the given TMDB ID
func (c *TMDBClient) Lookup(ctx context.Context, tmdbID int64) (*Result, error) {
	endpoint := fmt.Sprintf("%s/movie/%d?api_key=%s",
		c.baseURL, tmdbID, url.QueryEscape(c.apiKey))

	var m tmdbMovie
	if err := c.get(ctx, endpoint, &m); err != nil {
		return nil, fmt.Errorf("looking up movie %d: %w", tmdbID, err)
	}

	result := c.toResult(m)
	return &result, nil
}

func (c *TMDBClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *TMDBClient) toResult(m tmdbMovie) Result {
	result := Result{
		TMDBID:   m.ID,
		Title:    m.Title,
		Overview: m.Overview,
	}
	if m.PosterPath != "" {
		result.PosterURL = c.imageBaseURL + m.PosterPath
	}
	// Release dates come back as YYYY-MM-DD; some entries have none
	if len(m.ReleaseDate) >= 4 {
		if year, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil {
			result.ReleaseYear = year
		}
	}
	return result
}
