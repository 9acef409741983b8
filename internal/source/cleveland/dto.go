package cleveland

// searchResponse is the /artworks envelope
type searchResponse struct {
	Data []artworkData `json:"data"`
}

// artworkData is a single search hit
type artworkData struct {
	ID           int           `json:"id"`
	Title        string        `json:"title"`
	CreationDate string        `json:"creation_date"`
	Creators     []creator     `json:"creators"`
	Images       artworkImages `json:"images"`
}

// creator carries the attribution with an embedded biographical
// parenthetical, e.g. "Claude Monet (French, 1840-1926)"
type creator struct {
	Description string `json:"description"`
	Role        string `json:"role"`
}

type artworkImages struct {
	Web *imageFile `json:"web"`
}

type imageFile struct {
	URL string `json:"url"`
}
