package normalize

import (
	"sort"
	"strings"

	"teerth-api/internal/models"

	"golang.org/x/text/cases"
)

// Matches reports whether name contains query, ignoring case. An empty query matches everything.
func Matches(name, query string) bool {
	if query == "" {
		return true
	}
	c := cases.Fold()
	return strings.Contains(c.String(name), c.String(query))
}

// FilterStates keeps the states whose name contains query.
func FilterStates(states []models.StateEntry, query string) []models.StateEntry {
	out := []models.StateEntry{}
	for _, s := range states {
		if Matches(s.Name, query) {
			out = append(out, s)
		}
	}
	return out
}

// FilterPlaces keeps the places whose name contains query.
func FilterPlaces(places []models.PlaceSummary, query string) []models.PlaceSummary {
	out := []models.PlaceSummary{}
	for _, p := range places {
		if Matches(p.Name, query) {
			out = append(out, p)
		}
	}
	return out
}

// FavoritesFirst moves favorite places ahead of the rest, keeping relative order.
func FavoritesFirst(places []models.PlaceSummary) []models.PlaceSummary {
	out := append([]models.PlaceSummary{}, places...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Favorite && !out[j].Favorite
	})
	return out
}
