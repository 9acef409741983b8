// Package source defines the museum adapter contract and builds the adapter
// registry from configuration.
package source

import (
	"context"
	"log/slog"

	"github.com/marchand/easel/internal/canon"
	"github.com/marchand/easel/internal/config"
	"github.com/marchand/easel/internal/domain"
	"github.com/marchand/easel/internal/source/aic"
	"github.com/marchand/easel/internal/source/cleveland"
	"github.com/marchand/easel/internal/source/met"
	"github.com/marchand/easel/internal/source/vam"
)

// Source translates one museum's API into the common artwork record.
// Random returns domain.ErrNoMatch when nothing survives the filters;
// any other error is a transport or parse failure.
type Source interface {
	Name() string
	Random(ctx context.Context) (*domain.Artwork, error)
}

// Build constructs the enabled adapters. Endpoint overrides in the config
// replace the public API base URLs.
func Build(cfg *config.Config, cn *canon.Canon, rng domain.Rand, logger *slog.Logger) []Source {
	timeout := cfg.Timeout()

	var sources []Source
	if !cfg.Sources.Met.Disabled {
		sources = append(sources, met.NewClient(cfg.Sources.Met.Endpoint, timeout, cn, rng, logger))
	}
	if !cfg.Sources.AIC.Disabled {
		sources = append(sources, aic.NewClient(cfg.Sources.AIC.Endpoint, timeout, cn, rng, logger))
	}
	if !cfg.Sources.VAM.Disabled {
		sources = append(sources, vam.NewClient(cfg.Sources.VAM.Endpoint, timeout, cn, rng, logger))
	}
	if !cfg.Sources.Cleveland.Disabled {
		sources = append(sources, cleveland.NewClient(cfg.Sources.Cleveland.Endpoint, timeout, cn, rng, logger))
	}
	return sources
}
