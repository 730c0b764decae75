package youtube

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// Engagement figures the Data API cannot provide without a delegated
// OAuth flow against the Analytics API. Kept as fixed stand-ins rather
// than estimated from other counters.
const (
	placeholderAvgViewDurationSec = 300
	placeholderAvgViewPercentage  = 60.0
	assumedMinutesPerView         = 5
)

// maxPeriodVideos caps how many recent videos are listed when aggregating
// a month's engagement figures.
const maxPeriodVideos = 100

// ErrChannelNotFound is returned when a channel ID resolves to zero results.
var ErrChannelNotFound = errors.New("channel not found")

// UpstreamError carries the provider's status and message verbatim for any
// non-success response, including partial failures mid-listing.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("youtube: upstream error (status %d): %s", e.Status, e.Message)
}

func upstream(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &UpstreamError{Status: gerr.Code, Message: gerr.Message}
	}
	return &UpstreamError{Message: err.Error()}
}

// ChannelSummary is the channel metadata used when registering a channel.
type ChannelSummary struct {
	ID   string
	Name string
	URL  string
}

// ChannelStats are lifetime cumulative figures, not period-scoped.
type ChannelStats struct {
	TotalViews       int64
	TotalSubscribers int64
	TotalVideos      int
}

// VideoStats is one video's metadata and counters.
type VideoStats struct {
	VideoID     string
	Title       string
	Views       int64
	Likes       int64
	Comments    int64
	PublishedAt time.Time
}

// PeriodStats aggregates engagement for one calendar month.
type PeriodStats struct {
	Views                 int64
	Likes                 int64
	Comments              int64
	AverageViewDuration   int
	AverageViewPercentage float64
	EstimatedWatchMinutes int64
	Videos                []VideoStats
}

// MonthlyFigures is the assembled numeric input for one report. Lifetime
// channel totals sit next to period-scoped engagement; callers must not
// read the totals as monthly deltas.
type MonthlyFigures struct {
	ReportDate            time.Time
	ChannelID             string
	TotalViews            int64
	TotalSubscribers      int64
	TotalLikes            int64
	TotalComments         int64
	AverageViewDuration   int
	AverageViewPercentage float64
	TotalWatchTime        int64
	VideoCount            int
	Videos                []VideoStats
}

// Client wraps the YouTube Data API v3 with API-key auth.
type Client struct {
	svc *ytapi.Service
}

func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FetchChannelSummary returns the channel's display name and canonical URL.
func (c *Client) FetchChannelSummary(ctx context.Context, channelID string) (*ChannelSummary, error) {
	resp, err := c.svc.Channels.List([]string{"snippet"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, upstream(err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	ch := resp.Items[0]
	return &ChannelSummary{
		ID:   ch.Id,
		Name: ch.Snippet.Title,
		URL:  "https://www.youtube.com/channel/" + ch.Id,
	}, nil
}

// FetchChannelStats returns the channel's lifetime cumulative statistics.
func (c *Client) FetchChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	resp, err := c.svc.Channels.List([]string{"statistics"}).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, upstream(err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	st := resp.Items[0].Statistics
	return &ChannelStats{
		TotalViews:       int64(st.ViewCount),
		TotalSubscribers: int64(st.SubscriberCount),
		TotalVideos:      int(st.VideoCount),
	}, nil
}

// appendCapped appends page entries to videos without exceeding
// maxPeriodVideos; a page that would overshoot is truncated.
func appendCapped(videos, page []VideoStats) []VideoStats {
	room := maxPeriodVideos - len(videos)
	if room <= 0 {
		return videos
	}
	if len(page) > room {
		page = page[:room]
	}
	return append(videos, page...)
}

// listRecentVideos lists the channel's most recent videos (search, then a
// statistics lookup per page of IDs), newest first, up to maxPeriodVideos.
func (c *Client) listRecentVideos(ctx context.Context, channelID string) ([]VideoStats, error) {
	var videos []VideoStats
	pageToken := ""

	for len(videos) < maxPeriodVideos {
		call := c.svc.Search.List([]string{"snippet"}).
			ChannelId(channelID).
			MaxResults(50).
			Order("date").
			Type("video").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		searchResp, err := call.Do()
		if err != nil {
			return nil, upstream(err)
		}

		var ids []string
		for _, item := range searchResp.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}
		if len(ids) == 0 {
			break
		}

		statsResp, err := c.svc.Videos.List([]string{"statistics", "snippet"}).
			Id(ids...).Context(ctx).Do()
		if err != nil {
			return nil, upstream(err)
		}

		page := make([]VideoStats, 0, len(statsResp.Items))
		for _, v := range statsResp.Items {
			publishedAt, err := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
			if err != nil {
				return nil, &UpstreamError{Message: fmt.Sprintf("bad publishedAt for video %s: %v", v.Id, err)}
			}
			page = append(page, VideoStats{
				VideoID:     v.Id,
				Title:       v.Snippet.Title,
				Views:       int64(v.Statistics.ViewCount),
				Likes:       int64(v.Statistics.LikeCount),
				Comments:    int64(v.Statistics.CommentCount),
				PublishedAt: publishedAt,
			})
		}
		videos = appendCapped(videos, page)

		pageToken = searchResp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return videos, nil
}

// aggregatePeriod filters videos to those published within the month starting
// at start and sums their counters. Average duration/percentage are the fixed
// placeholder constants; watch minutes assume five minutes per view.
func aggregatePeriod(videos []VideoStats, start time.Time) PeriodStats {
	stats := PeriodStats{
		AverageViewDuration:   placeholderAvgViewDurationSec,
		AverageViewPercentage: placeholderAvgViewPercentage,
	}
	for _, v := range videos {
		if !inPeriod(v.PublishedAt, start) {
			continue
		}
		stats.Views += v.Views
		stats.Likes += v.Likes
		stats.Comments += v.Comments
		stats.Videos = append(stats.Videos, v)
	}
	stats.EstimatedWatchMinutes = stats.Views * assumedMinutesPerView
	return stats
}

// FetchPeriodStats returns the channel's aggregated engagement for one month.
func (c *Client) FetchPeriodStats(ctx context.Context, channelID string, year, month int) (*PeriodStats, error) {
	start, _ := MonthRange(year, month)
	videos, err := c.listRecentVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}
	stats := aggregatePeriod(videos, start)
	return &stats, nil
}

// FetchMonthlyFigures assembles the numeric fields for one monthly report.
// The lifetime-stats and period-stats reads are independent and run
// concurrently; the first error aborts the whole fetch.
func (c *Client) FetchMonthlyFigures(ctx context.Context, channelID string, year, month int) (*MonthlyFigures, error) {
	start, _ := MonthRange(year, month)

	var (
		wg        sync.WaitGroup
		chStats   *ChannelStats
		chErr     error
		period    *PeriodStats
		periodErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		chStats, chErr = c.FetchChannelStats(ctx, channelID)
	}()
	go func() {
		defer wg.Done()
		period, periodErr = c.FetchPeriodStats(ctx, channelID, year, month)
	}()
	wg.Wait()

	if chErr != nil {
		return nil, chErr
	}
	if periodErr != nil {
		return nil, periodErr
	}

	return &MonthlyFigures{
		ReportDate:            start,
		ChannelID:             channelID,
		TotalViews:            chStats.TotalViews,
		TotalSubscribers:      chStats.TotalSubscribers,
		TotalLikes:            period.Likes,
		TotalComments:         period.Comments,
		AverageViewDuration:   period.AverageViewDuration,
		AverageViewPercentage: period.AverageViewPercentage,
		TotalWatchTime:        period.EstimatedWatchMinutes,
		VideoCount:            chStats.TotalVideos,
		Videos:                period.Videos,
	}, nil
}
