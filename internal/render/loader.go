// Package render holds the renderer implementations consumed by the
// session controller: a terminal card, a self-contained HTML page, and the
// shared image preloader whose failure drives the fallback path.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"time"

	// Register the formats museum APIs actually serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/marchand/easel/internal/dataurl"
	"github.com/marchand/easel/internal/domain"
)

const userAgent = "Easel/1.0"

// Image is a preloaded, decoded-header image ready to display or save.
type Image struct {
	Bytes  []byte
	MIME   string
	Format string
	Width  int
	Height int
}

// Loader preloads artwork images. A cached artwork decodes its embedded
// data URL; anything else is fetched over HTTP.
type Loader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates an image loader.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Load returns the artwork's image. An undecodable or unfetchable image is
// the render-time load failure the session controller reacts to.
func (l *Loader) Load(ctx context.Context, a *domain.Artwork) (*Image, error) {
	var (
		data []byte
		mime string
		err  error
	)

	if a.Embedded() {
		mime, data, err = dataurl.Decode(a.DataURL)
	} else {
		data, mime, err = l.fetch(ctx, a.ImageURL)
	}
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Image{
		Bytes:  data,
		MIME:   mime,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

func (l *Loader) fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
