package normalize

import (
	"testing"

	"teerth-api/internal/columns"
	"teerth-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placesIndex(t *testing.T, rows []models.Row, lang models.Language) *columns.HeaderIndex {
	t.Helper()
	idx, err := columns.ResolveRows(rows, columns.Places, lang, columns.State, columns.Place)
	require.NoError(t, err)
	return idx.Optional(columns.Latitude, columns.Longitude)
}

func TestBuildStates(t *testing.T) {
	tests := []struct {
		name     string
		rows     []models.Row
		expected []models.StateEntry
	}{
		{
			name: "two states",
			rows: []models.Row{
				{"State", "Name teerth", "latitude", "longitude"},
				{"MP", "Place1", "23.1", "80.2"},
				{"UP", "Place2", "26.8", "80.9"},
			},
			expected: []models.StateEntry{
				{Name: "MP", Places: []string{"Place1"}},
				{Name: "UP", Places: []string{"Place2"}},
			},
		},
		{
			name: "first seen order and duplicates kept",
			rows: []models.Row{
				{"State", "Name teerth"},
				{"UP", "B"},
				{"MP", "A"},
				{"UP", "C"},
				{"UP", "B"},
			},
			expected: []models.StateEntry{
				{Name: "UP", Places: []string{"B", "C", "B"}},
				{Name: "MP", Places: []string{"A"}},
			},
		},
		{
			name: "rows missing state or place skipped",
			rows: []models.Row{
				{"State", "Name teerth"},
				{"", "Orphan"},
				{"MP", ""},
				{"MP"},
				{"MP", "A"},
			},
			expected: []models.StateEntry{
				{Name: "MP", Places: []string{"A"}},
			},
		},
		{
			name: "exact match only",
			rows: []models.Row{
				{"State", "Name teerth"},
				{"MP", "A"},
				{"MP ", "B"},
				{"mp", "C"},
			},
			expected: []models.StateEntry{
				{Name: "MP", Places: []string{"A"}},
				{Name: "MP ", Places: []string{"B"}},
				{Name: "mp", Places: []string{"C"}},
			},
		},
		{
			name:     "header only",
			rows:     []models.Row{{"State", "Name teerth"}},
			expected: []models.StateEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := placesIndex(t, tt.rows, models.English)
			assert.Equal(t, tt.expected, BuildStates(tt.rows, idx))
		})
	}
}

func TestBuildStates_HeaderNeverData(t *testing.T) {
	rows := []models.Row{{"Rajya", "Naam"}, {"मध्य प्रदेश", "कुंडलपुर"}}
	idx := placesIndex(t, rows, models.Hindi)

	states := BuildStates(rows, idx)

	require.Len(t, states, 1)
	assert.Equal(t, "मध्य प्रदेश", states[0].Name)
}

func TestSortStates(t *testing.T) {
	in := []models.StateEntry{{Name: "UP"}, {Name: "Bihar"}, {Name: "MP"}, {Name: "assam"}}

	out := SortStates(in, models.English)

	names := make([]string, len(out))
	for i, s := range out {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"assam", "Bihar", "MP", "UP"}, names)
	assert.Equal(t, "UP", in[0].Name, "input must not be reordered")
}

func TestSortStates_Hindi(t *testing.T) {
	in := []models.StateEntry{{Name: "राजस्थान"}, {Name: "उत्तर प्रदेश"}, {Name: "मध्य प्रदेश"}, {Name: "गुजरात"}}

	out := SortStates(in, models.Hindi)

	names := make([]string, len(out))
	for i, s := range out {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"उत्तर प्रदेश", "गुजरात", "मध्य प्रदेश", "राजस्थान"}, names)
}

func TestPlacesForState(t *testing.T) {
	rows := []models.Row{
		{"State", "Name teerth"},
		{"MP", "A"},
		{"MP", "B"},
		{"UP", "X"},
		{"MP", "A"},
	}
	idx := placesIndex(t, rows, models.English)

	places := PlacesForState(rows, idx, "MP")

	assert.Equal(t, []string{"A", "B", "A"}, places)
	assert.Equal(t, []string{"A", "B"}, UniquePlaces(places))
	assert.Equal(t, []string{}, PlacesForState(rows, idx, "Goa"))
}

func TestUniquePlaces(t *testing.T) {
	assert.Equal(t, []string{"B", "A", "C"}, UniquePlaces([]string{"B", "A", "", "B", "C", "A"}))
	assert.Equal(t, []string{}, UniquePlaces(nil))
}

func TestRecordsForPlace(t *testing.T) {
	rows := []models.Row{
		{"State", "Name teerth", "latitude", "longitude"},
		{"MP", "Kundalpur", "23.9", "79.6"},
		{"MP", "Bandha", "24.1", "79.0"},
		{"MP", "Kundalpur", "", "", "Phone", "12345"},
	}
	idx := placesIndex(t, rows, models.English)

	records, err := RecordsForPlace(rows, idx, "Kundalpur")
	require.NoError(t, err)
	assert.Equal(t, []models.Row{rows[1], rows[3]}, records)

	_, err = RecordsForPlace(rows, idx, "kundalpur")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = RecordsForPlace(rows, idx, "Name teerth")
	assert.ErrorIs(t, err, ErrNotFound, "header row must not match")
}

func TestBuildImageMap(t *testing.T) {
	rows := []models.Row{
		{"State", "Rajya", "Place", "Tirth", "Link"},
		{"MP", "मध्य प्रदेश", "Kundalpur", "कुंडलपुर", "https://img/1.jpg"},
		{"MP", "मध्य प्रदेश", "Kundalpur", "कुंडलपुर", "https://img/2.jpg"},
		{"MP", "मध्य प्रदेश", "Bandha", "बंधा", ""},
		{"UP", "उत्तर प्रदेश", "Ayodhya", "", "https://img/3.jpg"},
		{"", "", "", "", "https://img/4.jpg"},
	}

	enIdx, err := columns.ResolveRows(rows, columns.Images, models.English, columns.Required[columns.Images]...)
	require.NoError(t, err)
	en := BuildImageMap(rows, enIdx)
	assert.Equal(t, models.ImageMap{
		"MP": {"Kundalpur": {"https://img/1.jpg", "https://img/2.jpg"}},
		"UP": {"Ayodhya": {"https://img/3.jpg"}},
	}, en)
	_, hasBandha := en["MP"]["Bandha"]
	assert.False(t, hasBandha, "empty link must not create an entry")

	hiIdx, err := columns.ResolveRows(rows, columns.Images, models.Hindi, columns.Required[columns.Images]...)
	require.NoError(t, err)
	hi := BuildImageMap(rows, hiIdx)
	assert.Equal(t, models.ImageMap{
		"मध्य प्रदेश": {"कुंडलपुर": {"https://img/1.jpg", "https://img/2.jpg"}},
	}, hi)
}

func TestImagesForPlace(t *testing.T) {
	m := models.ImageMap{
		"MP": {"Kundalpur": {"a", "b"}},
		"UP": {"Kundalpur": {"c"}, "Ayodhya": {"d"}},
	}

	assert.Equal(t, []string{"c"}, ImagesForPlace(m, "UP", "Kundalpur"))
	assert.Equal(t, []string{"a", "b"}, ImagesForPlace(m, "", "Kundalpur"))
	assert.Equal(t, []string{"d"}, ImagesForPlace(m, "", "Ayodhya"))
	assert.Equal(t, []string{}, ImagesForPlace(m, "MP", "Ayodhya"))
	assert.Equal(t, []string{}, ImagesForPlace(m, "", "Nowhere"))
	assert.Equal(t, "a", Thumbnail(m, "MP", "Kundalpur"))
	assert.Equal(t, "", Thumbnail(m, "Goa", "Kundalpur"))
}

func TestBuildDetails(t *testing.T) {
	rows := []models.Row{
		{"State", "Name teerth", "latitude", "longitude", "Contact"},
		{"MP", "Kundalpur", "23.9", "79.6", "info@kundalpur.org"},
		{"MP", "Kundalpur", "23.9", "79.6", "www.kundalpur.org"},
		{"MP", "Kundalpur", "", "", "info@kundalpur.org"},
		{"MP", "Kundalpur", "", "", "Near Damoh"},
	}
	idx := placesIndex(t, rows, models.English)
	records, err := RecordsForPlace(rows, idx, "Kundalpur")
	require.NoError(t, err)

	d := BuildDetails(records, idx)

	assert.Equal(t, "Kundalpur", d.Name)
	assert.Equal(t, "MP", d.State)
	require.NotNil(t, d.Latitude)
	require.NotNil(t, d.Longitude)
	assert.Equal(t, 23.9, *d.Latitude)
	assert.Equal(t, 79.6, *d.Longitude)
	assert.Equal(t, "https://www.google.com/maps?q=23.9,79.6", d.MapURL)
	assert.Equal(t, []models.DetailField{
		{Label: "Contact", Value: "info@kundalpur.org", Link: "mailto:info@kundalpur.org"},
		{Label: "Contact", Value: "www.kundalpur.org", Link: "https://www.kundalpur.org"},
		{Label: "Contact", Value: "Near Damoh"},
	}, d.Fields)
	assert.Len(t, d.Rows, 4)
}

func TestBuildDetails_InvalidCoordinates(t *testing.T) {
	rows := []models.Row{
		{"State", "Name teerth", "latitude", "longitude"},
		{"MP", "Kundalpur", "north", "79.6"},
	}
	idx := placesIndex(t, rows, models.English)

	d := BuildDetails(rows[1:], idx)

	assert.Nil(t, d.Latitude)
	assert.Empty(t, d.MapURL)
}

func TestLinkFor(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"someone@example.com", "mailto:someone@example.com"},
		{"https://example.com/path", "https://example.com/path"},
		{"http://example.org", "http://example.org"},
		{"www.example.in", "https://www.example.in"},
		{"+91 98765 43210", ""},
		{"example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, LinkFor(tt.value))
		})
	}
}

func TestVideosForPlace(t *testing.T) {
	rows := []models.Row{
		{"Place", "Video"},
		{"Kundalpur", "https://www.youtube.com/watch?v=abc123"},
		{"Kundalpur", ""},
		{"Bandha", "https://youtu.be/zzz"},
		{"Kundalpur", "https://youtu.be/def456"},
	}
	idx, err := columns.ResolveRows(rows, columns.Videos, models.English, columns.Required[columns.Videos]...)
	require.NoError(t, err)

	assert.Equal(t, []models.Video{
		{URL: "https://www.youtube.com/watch?v=abc123", VideoID: "abc123"},
		{URL: "https://youtu.be/def456", VideoID: "def456"},
	}, VideosForPlace(rows, idx, "Kundalpur"))
	assert.Equal(t, []models.Video{}, VideosForPlace(rows, idx, "Nowhere"))
}

func TestYouTubeID(t *testing.T) {
	assert.Equal(t, "abc", YouTubeID("https://www.youtube.com/watch?v=abc&t=10s"))
	assert.Equal(t, "abc", YouTubeID("https://m.youtube.com/watch?v=abc"))
	assert.Equal(t, "xyz", YouTubeID("https://youtu.be/xyz"))
	assert.Equal(t, "emb", YouTubeID("https://www.youtube.com/embed/emb"))
	assert.Equal(t, "", YouTubeID("https://vimeo.com/123"))
	assert.Equal(t, "", YouTubeID("::not a url"))
}

func TestSearchAndOrdering(t *testing.T) {
	states := []models.StateEntry{{Name: "Madhya Pradesh"}, {Name: "Uttar Pradesh"}, {Name: "Bihar"}}
	assert.Equal(t, []models.StateEntry{{Name: "Madhya Pradesh"}, {Name: "Uttar Pradesh"}}, FilterStates(states, "PRADESH"))
	assert.Equal(t, states, FilterStates(states, ""))
	assert.Equal(t, []models.StateEntry{}, FilterStates(states, "goa"))

	places := []models.PlaceSummary{
		{Name: "Bandha"},
		{Name: "Kundalpur", Favorite: true},
		{Name: "Sonagiri"},
		{Name: "Bahubali", Favorite: true},
	}
	assert.Equal(t, []models.PlaceSummary{
		{Name: "Kundalpur", Favorite: true},
		{Name: "Bahubali", Favorite: true},
		{Name: "Bandha"},
		{Name: "Sonagiri"},
	}, FavoritesFirst(places))
	assert.Equal(t, []models.PlaceSummary{{Name: "Bandha"}, {Name: "Bahubali", Favorite: true}}, FilterPlaces(places, "ba"))
}
