package models

// FavoriteSet is the ordered set of favorite place names of one language.
type FavoriteSet []string

// Contains reports whether place is in the set.
func (s FavoriteSet) Contains(place string) bool {
	for _, p := range s {
		if p == place {
			return true
		}
	}
	return false
}

// Toggle returns a new set with place removed if present, appended otherwise.
// The receiver is left untouched.
func (s FavoriteSet) Toggle(place string) FavoriteSet {
	out := make(FavoriteSet, 0, len(s)+1)
	found := false
	for _, p := range s {
		if p == place {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, place)
	}
	return out
}
