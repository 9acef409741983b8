package tui

import (
	"context"

	"github.com/marchand/easel/internal/domain"
	"github.com/marchand/easel/internal/render"
	"github.com/marchand/easel/internal/session"
)

// renderEvent is what the bridge renderer hands the program: either a
// preloaded artwork or the terminal error state.
type renderEvent struct {
	artwork *domain.Artwork
	img     *render.Image
	failed  bool
}

// renderMsg delivers a renderEvent into the update loop
type renderMsg renderEvent

// sessionDoneMsg reports how a session start resolved
type sessionDoneMsg struct {
	kind session.StartKind
	err  error
}

// statusMsg updates the transient status line
type statusMsg string

// bridge implements domain.Renderer on top of a channel, letting the
// session controller drive the Bubble Tea program. RenderArtwork preloads
// the image so load failures flow back into the controller's fallback path.
type bridge struct {
	loader *render.Loader
	events chan renderEvent
}

func newBridge(loader *render.Loader) *bridge {
	return &bridge{
		loader: loader,
		events: make(chan renderEvent, 1),
	}
}

func (b *bridge) RenderArtwork(a *domain.Artwork) error {
	img, err := b.loader.Load(context.Background(), a)
	if err != nil {
		return err
	}
	b.events <- renderEvent{artwork: a, img: img}
	return nil
}

func (b *bridge) ShowError() {
	b.events <- renderEvent{failed: true}
}
