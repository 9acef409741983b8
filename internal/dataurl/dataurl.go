// Package dataurl downloads images and converts them to self-contained
// base64 data URLs so a cached artwork renders without network access.
package dataurl

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const userAgent = "Easel/1.0"

// Encoder implements domain.ImageEncoder.
type Encoder struct {
	httpClient *http.Client
	maxBytes   int64
	logger     *slog.Logger
}

// NewEncoder creates an encoder. maxBytes caps the downloaded image size;
// zero selects a 24 MiB default.
func NewEncoder(timeout time.Duration, maxBytes int64, logger *slog.Logger) *Encoder {
	if maxBytes <= 0 {
		maxBytes = 24 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Encoder{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Encode downloads the image and returns it as a data URL. Errors propagate
// to the caller, which treats failure as "caching skipped this round".
func (e *Encoder) Encode(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > e.maxBytes {
		return "", fmt.Errorf("image exceeds %s cap", humanize.IBytes(uint64(e.maxBytes)))
	}

	mimeType := contentType(resp.Header.Get("Content-Type"), data)

	e.logger.Debug("image encoded", "url", imageURL, "size", humanize.IBytes(uint64(len(data))), "type", mimeType)

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// contentType prefers the response header, falling back to sniffing when
// the server sends nothing usable.
func contentType(header string, data []byte) string {
	if header != "" {
		if mt, _, err := mime.ParseMediaType(header); err == nil && mt != "application/octet-stream" {
			return mt
		}
	}
	return http.DetectContentType(data)
}

// Decode splits a data URL back into its media type and raw bytes.
func Decode(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}

	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("unsupported data URL encoding")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return mimeType, data, nil
}
