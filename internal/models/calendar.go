package models

// CalendarYear is one year of the printed calendar, front and back scans.
type CalendarYear struct {
	Year         string         `json:"year"`
	CalendarData []CalendarPage `json:"calendar_data"`
}

// CalendarPage holds the image URLs of one calendar sheet.
type CalendarPage struct {
	FrontURL string `json:"front_url"`
	BackURL  string `json:"back_url"`
}
