package normalize

import (
	"net/url"
	"strings"

	"teerth-api/internal/columns"
	"teerth-api/internal/models"
)

// VideosForPlace returns the non-empty video links of placeName in row order.
func VideosForPlace(rows []models.Row, idx *columns.HeaderIndex, placeName string) []models.Video {
	videos := []models.Video{}
	for _, row := range dataRows(rows) {
		if idx.MustValue(row, columns.Place) != placeName {
			continue
		}
		link := idx.MustValue(row, columns.Video)
		if link == "" {
			continue
		}
		videos = append(videos, models.Video{URL: link, VideoID: YouTubeID(link)})
	}
	return videos
}

// YouTubeID extracts the video id from watch?v=, youtu.be/ and /embed/ links.
func YouTubeID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtu.be":
		return strings.Trim(u.Path, "/")
	case "youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/"} {
			if id, ok := strings.CutPrefix(u.Path, prefix); ok {
				return strings.Trim(id, "/")
			}
		}
	}
	return ""
}
