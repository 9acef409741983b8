package met

// searchResponse is the /search envelope: the Met returns bare object IDs
// and requires a second request per record.
type searchResponse struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

// objectResponse is a single /objects/{id} record
type objectResponse struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ObjectDate        string `json:"objectDate"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Department        string `json:"department"`
	Medium            string `json:"medium"`
	ObjectURL         string `json:"objectURL"`
}
