package aic

import (
	"fmt"
	"strings"

	"github.com/marchand/easel/internal/domain"
)

// mapArtwork converts an AIC search hit to a domain artwork
func mapArtwork(a artworkData, iiifURL string) *domain.Artwork {
	title := a.Title
	if title == "" {
		title = "Untitled"
	}

	return &domain.Artwork{
		Title:    title,
		Artist:   cleanAttribution(a.ArtistDisplay),
		Year:     a.DateDisplay,
		ImageURL: fmt.Sprintf("%s/%s/full/843,/0/default.jpg", iiifURL, a.ImageID),
		Source:   domain.SourceAIC,
	}
}

// cleanAttribution reduces an artist_display value to the bare name. The
// field packs a biography after the name, newline- or parenthesis-separated:
// "Claude Monet\nFrench, 1840-1926" or "Claude Monet (French, 1840-1926)".
func cleanAttribution(display string) string {
	name := display
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "Unknown"
	}
	return name
}
