package vam

// searchResponse is the /objects/search envelope
type searchResponse struct {
	Records []objectRecord `json:"records"`
}

// objectRecord is a single search hit
type objectRecord struct {
	SystemNumber string       `json:"systemNumber"`
	PrimaryTitle string       `json:"_primaryTitle"`
	PrimaryMaker primaryMaker `json:"_primaryMaker"`
	PrimaryDate  string       `json:"_primaryDate"`
	Images       objectImages `json:"_images"`
}

type primaryMaker struct {
	Name        string `json:"name"`
	Association string `json:"association"`
}

type objectImages struct {
	PrimaryThumbnail string `json:"_primary_thumbnail"`
	IIIFImageBaseURL string `json:"_iiif_image_base_url"`
}
