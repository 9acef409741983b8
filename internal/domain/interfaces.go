package domain

import "context"

// Store is the persisted key-value slot store backing the cache-ahead
// controller. The controller owns the "ready" key exclusively.
type Store interface {
	Artwork(key string) (*Artwork, bool)
	SaveArtwork(key string, a *Artwork) error
	Remove(key string) error
	Close() error
}

// Renderer paints one artwork per session. RenderArtwork preloads the image
// and returns an error only when the image itself fails to load; ShowError is
// invoked only when even the fallback artwork could not be displayed.
type Renderer interface {
	RenderArtwork(a *Artwork) error
	ShowError()
}

// ArtworkFetcher produces one random artwork, or ErrNoArtwork on exhaustion.
type ArtworkFetcher interface {
	Random(ctx context.Context) (*Artwork, error)
}

// ImageEncoder downloads an image and returns a self-contained data URL.
type ImageEncoder interface {
	Encode(ctx context.Context, imageURL string) (string, error)
}
