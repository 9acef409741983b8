package render

import "github.com/marchand/easel/internal/domain"

// Null is a renderer that displays nothing, for sessions that only touch
// the cache slot (refill, clear).
type Null struct{}

func (Null) RenderArtwork(*domain.Artwork) error { return nil }

func (Null) ShowError() {}
