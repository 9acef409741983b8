package domain

import "fmt"

// Museum source names as they appear on the artwork card.
const (
	SourceMet       = "The Metropolitan Museum of Art"
	SourceAIC       = "Art Institute of Chicago"
	SourceVAM       = "Victoria and Albert Museum"
	SourceCleveland = "Cleveland Museum of Art"
)

// Artwork is a normalized painting record. Adapters guarantee a non-empty
// ImageURL; DataURL is set only once the image has been encoded for the
// cache slot.
type Artwork struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Year     string `json:"year"`
	ImageURL string `json:"imageUrl"`
	Source   string `json:"source"`
	DataURL  string `json:"dataUrl,omitempty"`
}

// Attribution returns the display attribution line, e.g. "Claude Monet, 1906".
func (a *Artwork) Attribution() string {
	if a.Year == "" {
		return a.Artist
	}
	return fmt.Sprintf("%s, %s", a.Artist, a.Year)
}

// Embedded reports whether the artwork carries a self-contained image and
// can be displayed without network access.
func (a *Artwork) Embedded() bool {
	return a.DataURL != ""
}

// fallbackImageURL points at a public-domain scan that is expected to stay up.
const fallbackImageURL = "https://www.artic.edu/iiif/2/3c27b499-af56-f0d5-93b5-a7f2f1ad5813/full/843,/0/default.jpg"

// Fallback returns the hardcoded artwork shown when every museum source
// comes up empty. Callers get a fresh copy each time.
func Fallback() *Artwork {
	return &Artwork{
		Title:    "Water Lilies",
		Artist:   "Claude Monet",
		Year:     "1906",
		ImageURL: fallbackImageURL,
		Source:   SourceAIC,
	}
}

// IsFallback reports whether a is the hardcoded fallback artwork.
func IsFallback(a *Artwork) bool {
	return a != nil && a.Title == "Water Lilies" && a.Source == SourceAIC && a.ImageURL == fallbackImageURL
}
