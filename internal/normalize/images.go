package normalize

import (
	"sort"

	"teerth-api/internal/columns"
	"teerth-api/internal/models"
)

// BuildImageMap collects image links per state and place, in row order.
// The index decides which state and place columns are read, so an index
// resolved for Hindi keys the map by the Hindi names.
// Rows missing any of state, place or link are skipped.
func BuildImageMap(rows []models.Row, idx *columns.HeaderIndex) models.ImageMap {
	m := models.ImageMap{}
	for _, row := range dataRows(rows) {
		state := idx.MustValue(row, columns.State)
		place := idx.MustValue(row, columns.Place)
		link := idx.MustValue(row, columns.Image)
		if state == "" || place == "" || link == "" {
			continue
		}
		places, ok := m[state]
		if !ok {
			places = map[string][]string{}
			m[state] = places
		}
		places[place] = append(places[place], link)
	}
	return m
}

// ImagesForPlace returns the links of place under stateName. With an empty
// stateName every state is searched in name order and the first match wins.
// The result is never nil.
func ImagesForPlace(m models.ImageMap, stateName, place string) []string {
	if stateName != "" {
		return nonNil(m[stateName][place])
	}
	states := make([]string, 0, len(m))
	for s := range m {
		states = append(states, s)
	}
	sort.Strings(states)
	for _, s := range states {
		if links, ok := m[s][place]; ok {
			return nonNil(links)
		}
	}
	return []string{}
}

// Thumbnail returns the first image of place under stateName, or "".
func Thumbnail(m models.ImageMap, stateName, place string) string {
	links := m[stateName][place]
	if len(links) == 0 {
		return ""
	}
	return links[0]
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}
