package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"golang.org/x/term"

	"github.com/marchand/easel/internal/domain"
)

const fallbackWidth = 80

var (
	cardBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E5A00D")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9FAFB")).
			Bold(true)

	attributionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9CA3AF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// Terminal renders an artwork card to a writer, for the one-shot CLI path.
type Terminal struct {
	out      io.Writer
	loader   *Loader
	savePath string // optional, write image bytes here after rendering
	plain    bool   // suppress styling for pipes
	logger   *slog.Logger
}

// NewTerminal creates a terminal renderer writing to out.
func NewTerminal(out io.Writer, loader *Loader, savePath string, plain bool, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{
		out:      out,
		loader:   loader,
		savePath: savePath,
		plain:    plain,
		logger:   logger,
	}
}

// RenderArtwork preloads the image and prints the card. A load failure
// returns an error so the session controller can fall back.
func (t *Terminal) RenderArtwork(a *domain.Artwork) error {
	img, err := t.loader.Load(context.Background(), a)
	if err != nil {
		return err
	}

	if t.savePath != "" {
		if err := atomic.WriteFile(t.savePath, bytes.NewReader(img.Bytes)); err != nil {
			// Saving is best-effort; the card still renders.
			t.logger.Warn("failed to save image", "path", t.savePath, "error", err)
		} else {
			t.logger.Info("image saved", "path", t.savePath, "size", humanize.IBytes(uint64(len(img.Bytes))))
		}
	}

	details := fmt.Sprintf("%s  ·  %dx%d %s, %s",
		a.Source, img.Width, img.Height, img.Format, humanize.IBytes(uint64(len(img.Bytes))))

	if t.plain {
		fmt.Fprintln(t.out, a.Title)
		fmt.Fprintln(t.out, a.Attribution())
		fmt.Fprintln(t.out, details)
		fmt.Fprintln(t.out, a.ImageURL)
		return nil
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(a.Title),
		attributionStyle.Render(a.Attribution()),
		"",
		dimStyle.Render(details),
		dimStyle.Render(a.ImageURL),
	)

	fmt.Fprintln(t.out, cardBorder.MaxWidth(t.width()).Render(card))
	return nil
}

// ShowError prints the user-visible error state. Only reached when even the
// fallback artwork's image failed to load.
func (t *Terminal) ShowError() {
	msg := "No artwork could be displayed. Check your network connection."
	if t.plain {
		fmt.Fprintln(t.out, msg)
		return
	}
	fmt.Fprintln(t.out, errorStyle.Render(msg))
}

func (t *Terminal) width() int {
	if f, ok := t.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallbackWidth
}
