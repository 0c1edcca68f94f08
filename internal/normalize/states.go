// Package normalize folds raw sheet rows into the state, place and detail views.
// All string matching is exact and case sensitive; values are never trimmed.
package normalize

import (
	"errors"
	"sort"

	"teerth-api/internal/columns"
	"teerth-api/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNotFound is returned when no row matches the requested place.
var ErrNotFound = errors.New("not found")

// dataRows returns rows without the header row.
func dataRows(rows []models.Row) []models.Row {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// BuildStates groups places under their state in first-seen order.
// Rows with an empty state or place are skipped; duplicate places are kept.
func BuildStates(rows []models.Row, idx *columns.HeaderIndex) []models.StateEntry {
	states := []models.StateEntry{}
	pos := make(map[string]int)
	for _, row := range dataRows(rows) {
		state := idx.MustValue(row, columns.State)
		place := idx.MustValue(row, columns.Place)
		if state == "" || place == "" {
			continue
		}
		if i, ok := pos[state]; ok {
			states[i].Places = append(states[i].Places, place)
			continue
		}
		pos[state] = len(states)
		states = append(states, models.StateEntry{Name: state, Places: []string{place}})
	}
	return states
}

func collatorFor(lang models.Language) *collate.Collator {
	tag := language.English
	if lang == models.Hindi {
		tag = language.Hindi
	}
	return collate.New(tag)
}

// SortStates returns a copy of states ordered by name using the collation of lang.
func SortStates(states []models.StateEntry, lang models.Language) []models.StateEntry {
	out := append([]models.StateEntry{}, states...)
	c := collatorFor(lang)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// PlacesForState lists the place column of every row whose state equals stateName.
// Duplicates are kept; see UniquePlaces.
func PlacesForState(rows []models.Row, idx *columns.HeaderIndex, stateName string) []string {
	places := []string{}
	for _, row := range dataRows(rows) {
		if idx.MustValue(row, columns.State) != stateName {
			continue
		}
		places = append(places, idx.MustValue(row, columns.Place))
	}
	return places
}

// UniquePlaces drops empty names and repeated names, keeping the first occurrence.
func UniquePlaces(places []string) []string {
	seen := make(map[string]struct{}, len(places))
	out := make([]string, 0, len(places))
	for _, p := range places {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
