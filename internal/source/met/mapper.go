package met

import "github.com/marchand/easel/internal/domain"

// mapObject converts a Met record to a domain artwork
func mapObject(obj *objectResponse, queryArtist string) *domain.Artwork {
	title := obj.Title
	if title == "" {
		title = "Untitled"
	}

	artist := obj.ArtistDisplayName
	if artist == "" {
		artist = queryArtist
	}

	return &domain.Artwork{
		Title:    title,
		Artist:   artist,
		Year:     obj.ObjectDate,
		ImageURL: obj.PrimaryImage,
		Source:   domain.SourceMet,
	}
}
