// Package cleveland queries the Cleveland Museum of Art open access API.
package cleveland

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
	defaultBaseURL = "https://openaccess-api.clevelandart.org/api"
	userAgent      = "Easel/1.0"

	pageSize = 40
	maxSkips = 3
)

// Client implements source.Source for the Cleveland Museum of Art
type Client struct {
	baseURL    string
	httpClient *http.Client
	canon      *canon.Canon
	rng        domain.Rand
	logger     *slog.Logger
}

// NewClient creates a new Cleveland API client. An empty baseURL selects
// the public endpoint.
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
	return domain.SourceCleveland
}

// Random returns one artwork by a randomly chosen canon painter, or
// domain.ErrNoMatch when no candidate survives the filters.
func (c *Client) Random(ctx context.Context) (*domain.Artwork, error) {
	artist := c.canon.Pick(c.rng)

	query := url.Values{}
	query.Set("q", artist)
	query.Set("has_image", "1")
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("skip", strconv.Itoa(pageSize*c.rng.Intn(maxSkips)))

	reqURL := fmt.Sprintf("%s/artworks/?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("cleveland request", "url", reqURL)

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

	var survivors []artworkData
	for _, a := range search.Data {
		if a.Images.Web == nil || a.Images.Web.URL == "" {
			continue
		}
		if len(a.Creators) == 0 || !c.canon.MatchesArtist(a.Creators[0].Description) {
			continue
		}
		if !c.canon.InEra(a.CreationDate) {
			continue
		}
		survivors = append(survivors, a)
	}
	if len(survivors) == 0 {
		return nil, domain.ErrNoMatch
	}

	pick := survivors[c.rng.Intn(len(survivors))]
	return mapArtwork(pick, artist), nil
}
