// Package columns maps logical fields to column positions of a header row.
package columns

import (
	"fmt"
	"strings"

	"teerth-api/internal/models"
)

// Field is a logical column, independent of the sheet's display language.
type Field string

const (
	State     Field = "state"
	Place     Field = "place"
	Latitude  Field = "latitude"
	Longitude Field = "longitude"
	Image     Field = "image"
	Video     Field = "video"
)

// Dataset names a sheet tab with its own column layout.
type Dataset string

const (
	Places Dataset = "places"
	Images Dataset = "images"
	Videos Dataset = "videos"
)

// NotFound is the position of a field absent from the header.
const NotFound = -1

// headers is the canonical column title of each field, per dataset and language.
var headers = map[Dataset]map[models.Language]map[Field]string{
	Places: {
		models.English: {State: "State", Place: "Name teerth", Latitude: "latitude", Longitude: "longitude"},
		models.Hindi:   {State: "Rajya", Place: "Naam", Latitude: "latitude", Longitude: "longitude"},
	},
	Images: {
		models.English: {State: "State", Place: "Place", Image: "Link"},
		models.Hindi:   {State: "Rajya", Place: "Tirth", Image: "Link"},
	},
	Videos: {
		models.English: {Place: "Place", Video: "Video"},
		models.Hindi:   {Place: "Place", Video: "Video"},
	},
}

// Required lists the fields every query of a dataset needs.
var Required = map[Dataset][]Field{
	Places: {State, Place},
	Images: {State, Place, Image},
	Videos: {Place, Video},
}

// Header returns the column title of field in dataset for lang.
func Header(dataset Dataset, lang models.Language, field Field) (string, bool) {
	h, ok := headers[dataset][lang][field]
	return h, ok
}

// MissingColumnsError reports requested fields whose column is absent from the header.
type MissingColumnsError struct {
	Dataset  Dataset
	Language models.Language
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s sheet (%s) is missing columns: %s", e.Dataset, e.Language, strings.Join(e.Missing, ", "))
}

// HeaderIndex holds the positions of resolved fields within one header row.
type HeaderIndex struct {
	Dataset  Dataset
	Language models.Language
	header   models.Row
	pos      map[Field]int
}

// Resolve maps each field to its position in header for lang.
// Every field must be present; the error names each missing column title.
func Resolve(header models.Row, dataset Dataset, lang models.Language, fields ...Field) (*HeaderIndex, error) {
	titles, ok := headers[dataset][lang]
	if !ok {
		return nil, fmt.Errorf("columns: no column table for %s/%s", dataset, lang)
	}

	idx := &HeaderIndex{Dataset: dataset, Language: lang, header: header, pos: make(map[Field]int, len(fields))}
	var missing []string
	for _, f := range fields {
		title, ok := titles[f]
		if !ok {
			missing = append(missing, string(f))
			continue
		}
		p := position(header, title)
		if p == NotFound {
			missing = append(missing, title)
			continue
		}
		idx.pos[f] = p
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Dataset: dataset, Language: lang, Missing: missing}
	}
	return idx, nil
}

// ResolveRows resolves against the first row of rows.
func ResolveRows(rows []models.Row, dataset Dataset, lang models.Language, fields ...Field) (*HeaderIndex, error) {
	if len(rows) == 0 {
		return Resolve(nil, dataset, lang, fields...)
	}
	return Resolve(rows[0], dataset, lang, fields...)
}

func position(header models.Row, title string) int {
	for i, h := range header {
		if h == title {
			return i
		}
	}
	return NotFound
}

// Position returns the column of f, or NotFound when f was not resolved.
func (h *HeaderIndex) Position(f Field) int {
	if p, ok := h.pos[f]; ok {
		return p
	}
	return NotFound
}

// Has reports whether f was resolved.
func (h *HeaderIndex) Has(f Field) bool {
	_, ok := h.pos[f]
	return ok
}

// Value returns the cell of row under f. It fails when f was not resolved.
func (h *HeaderIndex) Value(row models.Row, f Field) (string, error) {
	p, ok := h.pos[f]
	if !ok {
		return "", fmt.Errorf("columns: field %q was not resolved for %s", f, h.Dataset)
	}
	return row.Cell(p), nil
}

// MustValue is like Value but panics when f was not resolved. Use it only
// for fields passed to Resolve.
func (h *HeaderIndex) MustValue(row models.Row, f Field) string {
	v, err := h.Value(row, f)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the cell of row under f when f was resolved.
func (h *HeaderIndex) Lookup(row models.Row, f Field) (string, bool) {
	p, ok := h.pos[f]
	if !ok {
		return "", false
	}
	return row.Cell(p), true
}

// Header returns the header row the index was built from.
func (h *HeaderIndex) Header() models.Row {
	return h.header
}

// Optional adds the positions of fields that are present in the header and
// silently skips the rest. Use Lookup or Has to read them.
func (h *HeaderIndex) Optional(fields ...Field) *HeaderIndex {
	titles := headers[h.Dataset][h.Language]
	for _, f := range fields {
		title, ok := titles[f]
		if !ok {
			continue
		}
		if p := position(h.header, title); p != NotFound {
			h.pos[f] = p
		}
	}
	return h
}
