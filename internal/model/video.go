package model

import "time"

// VideoAnalytics is a per-video snapshot tied to a monthly report.
// Rows are written in bulk after report creation and never updated;
// they disappear with the report via the store-level cascade.
type VideoAnalytics struct {
	ID             string    `json:"id"`
	ReportID       string    `json:"reportId"`
	VideoID        string    `json:"videoId"`
	VideoTitle     string    `json:"videoTitle"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	ViewDuration   int       `json:"viewDuration"`
	ViewPercentage float64   `json:"viewPercentage"`
	PublishedAt    time.Time `json:"publishedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}
