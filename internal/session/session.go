// Package session is the cache-ahead controller. Each session start either
// displays the pre-fetched slot artwork instantly (warm start) or waits for
// a live fetch (cold start), then refills the slot in the background for
// the next session.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/marchand/easel/internal/domain"
)

// slotKey is the single cache-slot entry. Owned exclusively by this package.
const slotKey = "ready"

// StartKind is the session-start state, decided once per session by
// checking the persisted cache slot.
type StartKind int

const (
	ColdStart StartKind = iota
	WarmStart
)

func (k StartKind) String() string {
	if k == WarmStart {
		return "warm"
	}
	return "cold"
}

// Controller wires the fetch pipeline to the renderer and owns the slot.
type Controller struct {
	fetcher  domain.ArtworkFetcher
	encoder  domain.ImageEncoder
	store    domain.Store
	renderer domain.Renderer
	logger   *slog.Logger

	wg sync.WaitGroup
}

// New creates a session controller.
func New(fetcher domain.ArtworkFetcher, encoder domain.ImageEncoder, store domain.Store, renderer domain.Renderer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher:  fetcher,
		encoder:  encoder,
		store:    store,
		renderer: renderer,
		logger:   logger,
	}
}

// Start runs one session. On a warm start the slot artwork is evicted
// before rendering (delete-on-read) so a near-simultaneous second session
// cannot repeat it. Either way a background refill is spawned; the display
// path never blocks on it and never observes its outcome.
func (c *Controller) Start(ctx context.Context) (StartKind, error) {
	if cached, ok := c.store.Artwork(slotKey); ok {
		if err := c.store.Remove(slotKey); err != nil {
			c.logger.Warn("failed to evict cache slot", "error", err)
		}
		if cached.Embedded() {
			c.logger.Info("warm start", "title", cached.Title, "source", cached.Source)
			err := c.display(cached)
			c.spawnRefill(ctx)
			return WarmStart, err
		}
		// A slot without an embedded image cannot render offline; treat it
		// as a miss and fall through to a cold start.
		c.logger.Warn("discarded cache slot without embedded image", "title", cached.Title)
	}

	artwork, err := c.fetcher.Random(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoArtwork) {
			c.logger.Warn("fetch failed, using fallback", "error", err)
		}
		artwork = domain.Fallback()
	}

	c.logger.Info("cold start", "title", artwork.Title, "source", artwork.Source)
	displayErr := c.display(artwork)
	c.spawnRefill(ctx)
	return ColdStart, displayErr
}

// display renders an artwork, retrying once with the fallback when a
// non-fallback image fails to load. Only a broken fallback reaches the
// user as an error state.
func (c *Controller) display(a *domain.Artwork) error {
	err := c.renderer.RenderArtwork(a)
	if err == nil {
		return nil
	}

	if domain.IsFallback(a) {
		c.logger.Error("fallback artwork failed to render", "error", err)
		c.renderer.ShowError()
		return err
	}

	c.logger.Warn("render failed, retrying with fallback", "title", a.Title, "error", err)
	if err := c.renderer.RenderArtwork(domain.Fallback()); err != nil {
		c.logger.Error("fallback artwork failed to render", "error", err)
		c.renderer.ShowError()
		return err
	}
	return nil
}

// spawnRefill launches the fire-and-forget refill. It outlives the display
// path's context; failures are logged and swallowed, costing only the
// warmth of the next session.
func (c *Controller) spawnRefill(ctx context.Context) {
	bg := context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Refill(bg); err != nil {
			c.logger.Warn("background refill failed", "error", err)
		}
	}()
}

// Refill runs one refill pass synchronously: fetch, encode, write the slot.
// The fallback is never cached, so exhaustion skips the refill entirely.
func (c *Controller) Refill(ctx context.Context) error {
	artwork, err := c.fetcher.Random(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoArtwork) {
			c.logger.Info("refill skipped, no artwork found")
			return nil
		}
		return err
	}

	dataURL, err := c.encoder.Encode(ctx, artwork.ImageURL)
	if err != nil {
		return err
	}

	next := *artwork
	next.DataURL = dataURL
	if err := c.store.SaveArtwork(slotKey, &next); err != nil {
		return err
	}

	c.logger.Info("cache slot refilled", "title", next.Title, "source", next.Source)
	return nil
}

// Clear evicts the cache slot.
func (c *Controller) Clear() error {
	return c.store.Remove(slotKey)
}

// Wait blocks until in-flight background refills finish. Mains call it
// before teardown; the display path never does.
func (c *Controller) Wait() {
	c.wg.Wait()
}
