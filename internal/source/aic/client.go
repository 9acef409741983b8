// Package aic queries the Art Institute of Chicago API. Unlike the other
// sources it searches by genre keyword and leans on the API's own
// style_title tag as an authoritative Impressionism marker.
package aic

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
	defaultBaseURL = "https://api.artic.edu/api/v1"
	defaultIIIFURL = "https://www.artic.edu/iiif/2"
	userAgent      = "Easel/1.0"

	pageSize = 40
	maxPage  = 10
)

// Client implements source.Source for the Art Institute of Chicago
type Client struct {
	baseURL    string
	httpClient *http.Client
	canon      *canon.Canon
	rng        domain.Rand
	logger     *slog.Logger
}

// NewClient creates a new AIC API client. An empty baseURL selects the
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
	return domain.SourceAIC
}

// Random returns one Impressionist artwork from a random result page, or
// domain.ErrNoMatch when no candidate survives the filters.
func (c *Client) Random(ctx context.Context) (*domain.Artwork, error) {
	query := url.Values{}
	query.Set("q", "impressionism")
	query.Set("query[term][is_public_domain]", "true")
	query.Set("fields", "id,title,artist_display,date_display,image_id,style_title")
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("page", strconv.Itoa(1+c.rng.Intn(maxPage)))

	reqURL := fmt.Sprintf("%s/artworks/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("aic request", "url", reqURL)

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

	iiifURL := search.Config.IIIFURL
	if iiifURL == "" {
		iiifURL = defaultIIIFURL
	}

	var survivors []artworkData
	for _, a := range search.Data {
		if a.ImageID == "" {
			continue
		}
		if !c.canon.InEra(a.DateDisplay) {
			continue
		}
		// style_title is authoritative when present; otherwise fall back to
		// matching the attribution text against the canon.
		if a.StyleTitle != "Impressionism" && !c.canon.MatchesArtist(a.ArtistDisplay) {
			continue
		}
		survivors = append(survivors, a)
	}
	if len(survivors) == 0 {
		return nil, domain.ErrNoMatch
	}

	pick := survivors[c.rng.Intn(len(survivors))]
	return mapArtwork(pick, iiifURL), nil
}
