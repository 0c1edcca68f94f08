package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"teerth-api/internal/columns"
	"teerth-api/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	httpPattern  = regexp.MustCompile(`^(http|https)://[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(/[^\s]*)?$`)
	wwwPattern   = regexp.MustCompile(`^www\.[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(/[^\s]*)?$`)
)

// RecordsForPlace returns every row whose place column equals placeName.
// A place may span several rows, one per attribute.
func RecordsForPlace(rows []models.Row, idx *columns.HeaderIndex, placeName string) ([]models.Row, error) {
	var out []models.Row
	for _, row := range dataRows(rows) {
		if idx.MustValue(row, columns.Place) == placeName {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("place %q: %w", placeName, ErrNotFound)
	}
	return out, nil
}

// LinkFor returns the link a detail value opens, or "" for plain text.
// Addresses get mailto:, bare www. hosts get an https:// prefix.
func LinkFor(value string) string {
	switch {
	case emailPattern.MatchString(value):
		return "mailto:" + value
	case httpPattern.MatchString(value):
		return value
	case wwwPattern.MatchString(value):
		return "https://" + value
	}
	return ""
}

// MapURL builds a Google Maps link for the coordinates.
func MapURL(lat, lon float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		strconv.FormatFloat(lat, 'f', -1, 64), strconv.FormatFloat(lon, 'f', -1, 64))
}

func parseCoordinate(s string, limit float64) (*float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < -limit || v > limit {
		return nil, false
	}
	return &v, true
}

// BuildDetails assembles the details page from the rows of one place.
// Coordinates come from the first row that carries valid ones; the map link
// is only set when both are valid. Fields list every other non-empty cell
// labelled by its header, without repeating an identical label and value.
func BuildDetails(records []models.Row, idx *columns.HeaderIndex) models.PlaceDetails {
	d := models.PlaceDetails{Fields: []models.DetailField{}, Rows: records}
	if len(records) == 0 {
		return d
	}
	d.Name = idx.MustValue(records[0], columns.Place)

	skip := map[int]bool{idx.Position(columns.Place): true}
	for _, f := range []columns.Field{columns.State, columns.Latitude, columns.Longitude} {
		if idx.Has(f) {
			skip[idx.Position(f)] = true
		}
	}

	header := idx.Header()
	seen := map[string]bool{}
	for _, row := range records {
		if d.State == "" {
			d.State, _ = idx.Lookup(row, columns.State)
		}
		if d.Latitude == nil || d.Longitude == nil {
			latS, okLat := idx.Lookup(row, columns.Latitude)
			lonS, okLon := idx.Lookup(row, columns.Longitude)
			if okLat && okLon {
				lat, v1 := parseCoordinate(latS, 90)
				lon, v2 := parseCoordinate(lonS, 180)
				if v1 && v2 {
					d.Latitude, d.Longitude = lat, lon
				}
			}
		}
		for i, value := range row {
			if skip[i] || value == "" {
				continue
			}
			label := header.Cell(i)
			key := label + "\x00" + value
			if seen[key] {
				continue
			}
			seen[key] = true
			d.Fields = append(d.Fields, models.DetailField{Label: label, Value: value, Link: LinkFor(value)})
		}
	}
	if d.Latitude != nil && d.Longitude != nil {
		d.MapURL = MapURL(*d.Latitude, *d.Longitude)
	}
	return d
}
