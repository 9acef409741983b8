// Package met queries the Metropolitan Museum of Art open access API.
// The Met only exposes a two-phase lookup: a search that returns object IDs,
// then one request per record. To keep latency bounded the client samples at
// most six IDs at random instead of walking the full candidate list.
package met

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/marchand/easel/internal/canon"
	"github.com/marchand/easel/internal/domain"
)

const (
	defaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"
	userAgent      = "Easel/1.0"

	// Bounded retry over the search results; misses return domain.ErrNoMatch
	// rather than hammering the per-object endpoint.
	maxObjectTries = 6
)

// Client implements source.Source for the Met
type Client struct {
	baseURL    string
	httpClient *http.Client
	canon      *canon.Canon
	rng        domain.Rand
	logger     *slog.Logger
}

// NewClient creates a new Met API client. An empty baseURL selects the
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
	return domain.SourceMet
}

// doGet performs a GET request against the Met API
func (c *Client) doGet(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("met request", "url", reqURL)

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

	return body, nil
}

// Random returns one artwork by a randomly chosen canon painter, or
// domain.ErrNoMatch when the sampled records all fail the filters.
func (c *Client) Random(ctx context.Context) (*domain.Artwork, error) {
	artist := c.canon.Pick(c.rng)

	query := url.Values{}
	query.Set("q", fmt.Sprintf("%q", artist))
	query.Set("hasImages", "true")
	query.Set("medium", "Paintings")

	body, err := c.doGet(ctx, "/search", query)
	if err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if len(search.ObjectIDs) == 0 {
		return nil, domain.ErrNoMatch
	}

	for try := 0; try < maxObjectTries; try++ {
		id := search.ObjectIDs[c.rng.Intn(len(search.ObjectIDs))]

		obj, err := c.object(ctx, id)
		if err != nil {
			// Deaccessioned IDs 404; that is a miss, not an outage.
			if errors.Is(err, domain.ErrSourceUnavailable) {
				return nil, err
			}
			c.logger.Debug("met object fetch failed", "id", id, "error", err)
			continue
		}
		if obj.PrimaryImage == "" {
			continue
		}
		if !c.canon.MatchesArtist(obj.ArtistDisplayName) {
			continue
		}
		if !c.canon.InEra(obj.ObjectDate) {
			continue
		}
		return mapObject(obj, artist), nil
	}

	return nil, domain.ErrNoMatch
}

// object fetches a single record
func (c *Client) object(ctx context.Context, id int) (*objectResponse, error) {
	body, err := c.doGet(ctx, fmt.Sprintf("/objects/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var obj objectResponse
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse object response: %w", err)
	}
	return &obj, nil
}
