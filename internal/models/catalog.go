package models

// Language selects which column set of the sheet is read.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// Languages lists every supported language in display order.
var Languages = []Language{English, Hindi}

// Valid reports whether the language has a column table.
func (l Language) Valid() bool {
	return l == English || l == Hindi
}

// Row is one spreadsheet row, addressed by column position.
type Row []string

// Cell returns the value at position i, or "" when the row is shorter than i.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// StateEntry is a state with the places listed under it, in sheet order.
type StateEntry struct {
	Name   string   `json:"name"`
	Places []string `json:"places"`
}

// ImageMap maps state name to place name to image URLs in sheet row order.
type ImageMap map[string]map[string][]string

// PlaceSummary is one card of the places grid.
type PlaceSummary struct {
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Favorite bool   `json:"favorite"`
}

// DetailField is a labelled value of a place, with an optional link target.
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Link  string `json:"link,omitempty"`
}

// PlaceDetails is the details page of a single place.
type PlaceDetails struct {
	Name      string        `json:"name"`
	State     string        `json:"state"`
	Latitude  *float64      `json:"latitude,omitempty"`
	Longitude *float64      `json:"longitude,omitempty"`
	MapURL    string        `json:"map_url,omitempty"`
	Fields    []DetailField `json:"fields"`
	Rows      []Row         `json:"rows"`
}

// Video is a video link of a place.
type Video struct {
	URL     string `json:"url"`
	VideoID string `json:"video_id,omitempty"`
}
