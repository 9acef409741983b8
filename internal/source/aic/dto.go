package aic

// searchResponse is the /artworks/search envelope
type searchResponse struct {
	Data   []artworkData  `json:"data"`
	Config responseConfig `json:"config"`
}

// responseConfig carries the IIIF base URL the image IDs resolve against
type responseConfig struct {
	IIIFURL string `json:"iiif_url"`
}

// artworkData is a single search hit, limited to the requested fields
type artworkData struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ArtistDisplay string `json:"artist_display"`
	DateDisplay   string `json:"date_display"`
	ImageID       string `json:"image_id"`
	StyleTitle    string `json:"style_title"`
}
