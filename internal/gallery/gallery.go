// Package gallery orchestrates the museum adapters: shuffle, try each in
// sequence, isolate per-adapter failures.
package gallery

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marchand/easel/internal/domain"
	"github.com/marchand/easel/internal/source"
)

// Gallery implements domain.ArtworkFetcher over a fixed adapter registry.
type Gallery struct {
	sources []source.Source
	rng     domain.Rand
	logger  *slog.Logger
}

// New creates a gallery over the given adapters.
func New(sources []source.Source, rng domain.Rand, logger *slog.Logger) *Gallery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gallery{sources: sources, rng: rng, logger: logger}
}

// Random shuffles the adapters and tries each in turn, returning the first
// success. Adapter failures are logged and swallowed; exhaustion returns
// domain.ErrNoArtwork. The fallback substitution is the caller's decision.
func (g *Gallery) Random(ctx context.Context) (*domain.Artwork, error) {
	shuffled := make([]source.Source, len(g.sources))
	copy(shuffled, g.sources)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, s := range shuffled {
		artwork, err := s.Random(ctx)
		if err == nil {
			g.logger.Debug("artwork selected", "source", s.Name(), "title", artwork.Title, "artist", artwork.Artist)
			return artwork, nil
		}
		if errors.Is(err, domain.ErrNoMatch) {
			g.logger.Debug("source had no match", "source", s.Name())
			continue
		}
		g.logger.Warn("source failed", "source", s.Name(), "error", err)
	}

	return nil, domain.ErrNoArtwork
}
