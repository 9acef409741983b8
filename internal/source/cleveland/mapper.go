package cleveland

import (
	"strings"

	"github.com/marchand/easel/internal/domain"
)

// mapArtwork converts a Cleveland search hit to a domain artwork
func mapArtwork(a artworkData, queryArtist string) *domain.Artwork {
	title := a.Title
	if title == "" {
		title = "Untitled"
	}

	artist := ""
	if len(a.Creators) > 0 {
		artist = cleanCreator(a.Creators[0].Description)
	}
	if artist == "" {
		artist = queryArtist
	}

	return &domain.Artwork{
		Title:    title,
		Artist:   artist,
		Year:     a.CreationDate,
		ImageURL: a.Images.Web.URL,
		Source:   domain.SourceCleveland,
	}
}

// cleanCreator strips the biographical parenthetical from a creator
// description: "Claude Monet (French, 1840-1926)" -> "Claude Monet"
func cleanCreator(description string) string {
	name := description
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}
