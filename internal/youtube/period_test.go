package youtube

import (
	"testing"
	"time"
)

func TestMonthRange_LeapFebruary(t *testing.T) {
	start, end := MonthRange(2024, 2)

	if got := start.Format("2006-01-02"); got != "2024-02-01" {
		t.Errorf("start = %s, want 2024-02-01", got)
	}
	if got := end.Format("2006-01-02"); got != "2024-02-29" {
		t.Errorf("end = %s, want 2024-02-29 (leap year)", got)
	}
}

func TestMonthRange_NonLeapFebruary(t *testing.T) {
	_, end := MonthRange(2023, 2)
	if got := end.Format("2006-01-02"); got != "2023-02-28" {
		t.Errorf("end = %s, want 2023-02-28", got)
	}
}

func TestMonthRange_DecemberRollsToNextYear(t *testing.T) {
	_, end := MonthRange(2024, 12)
	if got := end.Format("2006-01-02"); got != "2024-12-31" {
		t.Errorf("end = %s, want 2024-12-31", got)
	}

	nextStart, _ := MonthRange(2025, 1)
	if !end.Before(nextStart) {
		t.Errorf("December end %s should precede January start %s", end, nextStart)
	}
}

func TestMonthRange_ThirtyDayMonth(t *testing.T) {
	_, end := MonthRange(2024, 4)
	if got := end.Format("2006-01-02"); got != "2024-04-30" {
		t.Errorf("end = %s, want 2024-04-30", got)
	}
}

func TestInPeriod_Boundaries(t *testing.T) {
	start, _ := MonthRange(2024, 2)

	firstMoment := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !inPeriod(firstMoment, start) {
		t.Error("first moment of the month should be in period")
	}

	// Late on the final day still counts — the range covers the whole day.
	lastDayEvening := time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)
	if !inPeriod(lastDayEvening, start) {
		t.Error("evening of Feb 29 should be in period")
	}

	nextMonth := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if inPeriod(nextMonth, start) {
		t.Error("first moment of March should not be in period")
	}

	before := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	if inPeriod(before, start) {
		t.Error("end of January should not be in period")
	}
}

func TestAggregatePeriod_SumsOnlyInRangeVideos(t *testing.T) {
	start, _ := MonthRange(2024, 2)

	videos := []VideoStats{
		{VideoID: "in1", Views: 100, Likes: 10, Comments: 1,
			PublishedAt: time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)},
		{VideoID: "in2", Views: 200, Likes: 20, Comments: 2,
			PublishedAt: time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)},
		{VideoID: "out", Views: 999, Likes: 99, Comments: 9,
			PublishedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	stats := aggregatePeriod(videos, start)

	if stats.Views != 300 {
		t.Errorf("views = %d, want 300", stats.Views)
	}
	if stats.Likes != 30 {
		t.Errorf("likes = %d, want 30", stats.Likes)
	}
	if stats.Comments != 3 {
		t.Errorf("comments = %d, want 3", stats.Comments)
	}
	if len(stats.Videos) != 2 {
		t.Errorf("videos in period = %d, want 2", len(stats.Videos))
	}
	if stats.EstimatedWatchMinutes != 300*assumedMinutesPerView {
		t.Errorf("watch minutes = %d, want %d", stats.EstimatedWatchMinutes, 300*assumedMinutesPerView)
	}
}

func TestAggregatePeriod_PlaceholderEngagementConstants(t *testing.T) {
	start, _ := MonthRange(2024, 6)
	stats := aggregatePeriod(nil, start)

	if stats.AverageViewDuration != placeholderAvgViewDurationSec {
		t.Errorf("avg view duration = %d, want %d", stats.AverageViewDuration, placeholderAvgViewDurationSec)
	}
	if stats.AverageViewPercentage != placeholderAvgViewPercentage {
		t.Errorf("avg view percentage = %.1f, want %.1f", stats.AverageViewPercentage, placeholderAvgViewPercentage)
	}
	if stats.Views != 0 || stats.EstimatedWatchMinutes != 0 {
		t.Errorf("empty period should have zero views and watch minutes, got %d/%d",
			stats.Views, stats.EstimatedWatchMinutes)
	}
}

func TestAppendCapped_NeverExceedsListingCap(t *testing.T) {
	page := make([]VideoStats, 50)

	var videos []VideoStats
	for i := 0; i < 4; i++ {
		videos = appendCapped(videos, page)
	}

	if len(videos) != maxPeriodVideos {
		t.Errorf("listing length = %d, want cap %d", len(videos), maxPeriodVideos)
	}
}

func TestAppendCapped_TruncatesOvershootingPage(t *testing.T) {
	videos := make([]VideoStats, maxPeriodVideos-1)
	page := []VideoStats{{VideoID: "a"}, {VideoID: "b"}}

	videos = appendCapped(videos, page)

	if len(videos) != maxPeriodVideos {
		t.Fatalf("listing length = %d, want cap %d", len(videos), maxPeriodVideos)
	}
	if videos[maxPeriodVideos-1].VideoID != "a" {
		t.Errorf("last entry = %q, want first entry of the overshooting page", videos[maxPeriodVideos-1].VideoID)
	}
}
