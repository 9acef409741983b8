package vam

import (
	"strings"

	"github.com/marchand/easel/internal/domain"
)

// IIIF size tiers in the V&A image URLs. Search responses link the
// thumbnail tier; the full-resolution tier uses the same path template.
const (
	thumbnailTier = "/full/!100,100/"
	fullTier      = "/full/!1400,1400/"
)

// mapRecord converts a V&A search hit to a domain artwork
func mapRecord(r objectRecord, queryArtist string) *domain.Artwork {
	title := r.PrimaryTitle
	if title == "" {
		title = "Untitled"
	}

	artist := strings.TrimSpace(r.PrimaryMaker.Name)
	if artist == "" {
		artist = queryArtist
	}

	return &domain.Artwork{
		Title:    title,
		Artist:   artist,
		Year:     r.PrimaryDate,
		ImageURL: upgradeImageURL(r.Images.PrimaryThumbnail),
		Source:   domain.SourceVAM,
	}
}

// upgradeImageURL swaps the thumbnail size segment for the largest tier
func upgradeImageURL(thumbURL string) string {
	return strings.Replace(thumbURL, thumbnailTier, fullTier, 1)
}
