package model

import "time"

// MonthlyReport is one persisted snapshot of a channel's metrics for one
// calendar month. ReportDate is always the first day of the month and is the
// sort key for listings. The three narrative fields stay nil until the
// summarization pass succeeds; a report is fully usable without them.
//
// TotalViews / TotalSubscribers / VideoCount are lifetime cumulative figures
// from the provider; TotalLikes / TotalComments / TotalWatchTime are scoped to
// the report month. The mix is intentional.
type MonthlyReport struct {
	ID                    string    `json:"id"`
	ReportDate            time.Time `json:"reportDate"`
	ChannelID             string    `json:"channelId"`
	TotalViews            int64     `json:"totalViews"`
	TotalSubscribers      int64     `json:"totalSubscribers"`
	SubscriberGrowth      int64     `json:"subscriberGrowth"`
	TotalLikes            int64     `json:"totalLikes"`
	TotalComments         int64     `json:"totalComments"`
	AverageViewDuration   int       `json:"averageViewDuration"`
	AverageViewPercentage float64   `json:"averageViewPercentage"`
	TotalWatchTime        int64     `json:"totalWatchTime"`
	VideoCount            int       `json:"videoCount"`
	Summary               *string   `json:"summary,omitempty"`
	Insights              *string   `json:"insights,omitempty"`
	Recommendations       *string   `json:"recommendations,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Narrative is the AI-generated triple attached to a report after the fact.
type Narrative struct {
	Summary         string `json:"summary"`
	Insights        string `json:"insights"`
	Recommendations string `json:"recommendations"`
}

// GenerateReportRequest is the API request body for report generation.
type GenerateReportRequest struct {
	ChannelID string `json:"channelId"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

// GenerateReportResponse is the API response for report generation.
// Summary is null and SummaryError non-empty when the narrative step degraded.
type GenerateReportResponse struct {
	Success      bool           `json:"success"`
	Report       *MonthlyReport `json:"report"`
	Summary      *Narrative     `json:"summary"`
	SummaryError string         `json:"summaryError,omitempty"`
}

// ReportStats is the dashboard aggregate over all persisted reports.
type ReportStats struct {
	TotalReports       int            `json:"totalReports"`
	LatestReport       *MonthlyReport `json:"latestReport"`
	AverageViews       int64          `json:"averageViews"`
	AverageSubscribers int64          `json:"averageSubscribers"`
}
