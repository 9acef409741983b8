// Package vam queries the Victoria and Albert Museum API. The search only
// returns thumbnail-tier IIIF URLs, so image links are upgraded to the
// largest tier before they leave the adapter.
package vam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/marchand/easel/internal/canon"
	"github.com/marchand/easel/internal/domain"
)

const (
	defaultBaseURL = "https://api.vam.ac.uk/v2"
	userAgent      = "Easel/1.0"

	pageSize = 50
	maxPage  = 3
)

// Client implements source.Source for the V&A
type Client struct {
	baseURL    string
	httpClient *http.Client
	canon      *canon.Canon
	rng        domain.Rand
	logger     *slog.Logger
}

// NewClient creates a new V&A API client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration, cn *canon.Canon, rng domain.Rand, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		canon:      cn,
		rng:        rng,
		logger:     logger,
	}
}

// Name returns the display name of the museum
func (c *Client) Name() string {
	return domain.SourceVAM
}

// Random returns one artwork by a randomly chosen canon painter, or
// domain.ErrNoMatch when no candidate survives the filters.
func (c *Client) Random(ctx context.Context) (*domain.Artwork, error) {
	artist := c.canon.Pick(c.rng)

	query := url.Values{}
	query.Set("q", artist)
	query.Set("images_exist", "1")
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("page", strconv.Itoa(1+c.rng.Intn(maxPage)))

	reqURL := fmt.Sprintf("%s/objects/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("vam request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	var survivors []objectRecord
	for _, r := range search.Records {
		if r.Images.PrimaryThumbnail == "" {
			continue
		}
		if !c.canon.MatchesArtist(r.PrimaryMaker.Name) {
			continue
		}
		if !c.canon.InEra(r.PrimaryDate) {
			continue
		}
		survivors = append(survivors, r)
	}
	if len(survivors) == 0 {
		return nil, domain.ErrNoMatch
	}

	pick := survivors[c.rng.Intn(len(survivors))]
	return mapRecord(pick, artist), nil
}
