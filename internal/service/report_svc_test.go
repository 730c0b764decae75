package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/repository"
	"github.com/KataCreate/report-sys/internal/youtube"
)

type fakeSource struct {
	figures *youtube.MonthlyFigures
	err     error
	calls   int
}

func (f *fakeSource) FetchMonthlyFigures(ctx context.Context, channelID string, year, month int) (*youtube.MonthlyFigures, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.figures, nil
}

type fakeStore struct {
	baseline    *model.MonthlyReport
	createErr   error
	updateErr   error
	findErr     error
	created     *model.MonthlyReport
	updated     *model.MonthlyReport
	createCalls int
	updateCalls int
}

func (f *fakeStore) Create(ctx context.Context, rep *model.MonthlyReport) (*model.MonthlyReport, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *rep
	saved.ID = "rep-1"
	saved.CreatedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	f.created = &saved
	return &saved, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*model.MonthlyReport, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.updated != nil {
		return f.updated, nil
	}
	if f.created != nil {
		return f.created, nil
	}
	return nil, &repository.PersistenceError{Op: "find report", Err: pgx.ErrNoRows}
}

func (f *fakeStore) FindByChannelAndPeriod(ctx context.Context, channelID string, period time.Time) (*model.MonthlyReport, error) {
	if f.baseline == nil {
		return nil, &repository.PersistenceError{Op: "find report by period", Err: pgx.ErrNoRows}
	}
	return f.baseline, nil
}

func (f *fakeStore) UpdateNarrative(ctx context.Context, id string, n *model.Narrative) (*model.MonthlyReport, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	up := *f.created
	up.Summary = &n.Summary
	up.Insights = &n.Insights
	up.Recommendations = &n.Recommendations
	up.UpdatedAt = up.UpdatedAt.Add(time.Second)
	f.updated = &up
	return &up, nil
}

func (f *fakeStore) List(ctx context.Context, limit int) ([]model.MonthlyReport, error) {
	return nil, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeStore) Stats(ctx context.Context) (*model.ReportStats, error) {
	return &model.ReportStats{}, nil
}

type fakeVideos struct {
	batchErr error
	inserted []model.VideoAnalytics
}

func (f *fakeVideos) CreateBatch(ctx context.Context, reportID string, videos []model.VideoAnalytics) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.inserted = append(f.inserted, videos...)
	return nil
}

func (f *fakeVideos) ListByReport(ctx context.Context, reportID string) ([]model.VideoAnalytics, error) {
	return f.inserted, nil
}

type fakeSummarizer struct {
	narrative *model.Narrative
	err       error
	calls     int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, report *model.MonthlyReport) (*model.Narrative, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.narrative, nil
}

func testFigures() *youtube.MonthlyFigures {
	return &youtube.MonthlyFigures{
		ReportDate:            time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ChannelID:             "UC123",
		TotalViews:            1000000,
		TotalSubscribers:      50000,
		TotalLikes:            4200,
		TotalComments:         310,
		AverageViewDuration:   300,
		AverageViewPercentage: 60,
		TotalWatchTime:        25000,
		VideoCount:            120,
		Videos: []youtube.VideoStats{
			{VideoID: "v1", Title: "First", Views: 3000, Likes: 400, Comments: 30,
				PublishedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func testNarrative() *model.Narrative {
	return &model.Narrative{
		Summary:         "Solid month.",
		Insights:        "Engagement up.",
		Recommendations: "Keep the cadence.",
	}
}

func TestGenerate_FullSuccess(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{}
	videos := &fakeVideos{}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, videos, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	rep := out.Report
	if rep.TotalViews != 1000000 || rep.TotalSubscribers != 50000 ||
		rep.TotalLikes != 4200 || rep.TotalComments != 310 ||
		rep.AverageViewDuration != 300 || rep.AverageViewPercentage != 60 ||
		rep.TotalWatchTime != 25000 || rep.VideoCount != 120 {
		t.Errorf("numeric fields do not match source figures: %+v", rep)
	}
	if rep.Summary == nil || *rep.Summary != "Solid month." {
		t.Errorf("report should carry the stored narrative, got %+v", rep.Summary)
	}
	if out.Narrative == nil || out.SummaryError != "" {
		t.Errorf("full success should have narrative and no summary error, got %+v", out)
	}
	if store.updateCalls != 1 {
		t.Errorf("narrative update calls = %d, want 1", store.updateCalls)
	}
	if len(videos.inserted) != 1 {
		t.Errorf("video analytics rows = %d, want 1", len(videos.inserted))
	}
}

func TestGenerate_SummarizerFailureDegrades(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{}
	summarizer := &fakeSummarizer{err: errors.New("transport: connection refused")}
	svc := NewReportService(source, store, &fakeVideos{}, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("summarizer failure must not fail the operation: %v", err)
	}

	if out.Report == nil || out.Report.ID != "rep-1" {
		t.Errorf("numeric report should still be returned, got %+v", out.Report)
	}
	if out.Narrative != nil {
		t.Errorf("narrative should be nil, got %+v", out.Narrative)
	}
	if out.SummaryError == "" {
		t.Error("summary error marker should be set")
	}
	if store.updateCalls != 0 {
		t.Errorf("no narrative update may be attempted, got %d calls", store.updateCalls)
	}
	if out.Report.Summary != nil {
		t.Errorf("returned report must not carry narrative fields, got %v", *out.Report.Summary)
	}
}

func TestGenerate_SourceNotFoundAborts(t *testing.T) {
	source := &fakeSource{err: youtube.ErrChannelNotFound}
	store := &fakeStore{}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, &fakeVideos{}, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UCunknown", 2024, 2)
	if !errors.Is(err, youtube.ErrChannelNotFound) {
		t.Fatalf("err = %v, want ErrChannelNotFound", err)
	}
	if out != nil {
		t.Errorf("aborted run must not produce an outcome, got %+v", out)
	}
	if store.createCalls != 0 {
		t.Errorf("no persistence write may be attempted, got %d creates", store.createCalls)
	}
	if summarizer.calls != 0 {
		t.Errorf("summarizer must not be called, got %d calls", summarizer.calls)
	}
}

func TestGenerate_UpstreamErrorAborts(t *testing.T) {
	source := &fakeSource{err: &youtube.UpstreamError{Status: 503, Message: "backend unavailable"}}
	store := &fakeStore{}
	svc := NewReportService(source, store, &fakeVideos{}, &fakeSummarizer{}, nil)

	_, err := svc.Generate(context.Background(), "UC123", 2024, 2)

	var upstream *youtube.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Status != 503 {
		t.Errorf("status = %d, want 503", upstream.Status)
	}
	if store.createCalls != 0 {
		t.Errorf("no persistence write may be attempted, got %d creates", store.createCalls)
	}
}

func TestGenerate_PersistFailureAborts(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{createErr: &repository.PersistenceError{Op: "create report", Err: errors.New("constraint violation")}}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, &fakeVideos{}, summarizer, nil)

	_, err := svc.Generate(context.Background(), "UC123", 2024, 2)

	var perr *repository.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if summarizer.calls != 0 {
		t.Errorf("summarizer must not run after a failed persist, got %d calls", summarizer.calls)
	}
}

func TestGenerate_NarrativeUpdateFailureStillSucceeds(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{updateErr: &repository.PersistenceError{Op: "update report narrative", Err: errors.New("connection reset")}}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, &fakeVideos{}, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("narrative update failure must not fail the operation: %v", err)
	}

	// Falls back to the pre-update row held in memory.
	if out.Report.Summary != nil {
		t.Errorf("fallback report should be the pre-update row, got summary %v", *out.Report.Summary)
	}
	if out.Narrative == nil {
		t.Error("generated narrative should still be returned")
	}
	if out.SummaryError != "" {
		t.Errorf("summary itself succeeded; marker should be empty, got %q", out.SummaryError)
	}
}

func TestGenerate_ReReadFailureFallsBackToPreUpdateReport(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{findErr: &repository.PersistenceError{Op: "find report", Err: errors.New("timeout")}}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, &fakeVideos{}, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("re-read failure must not fail the operation: %v", err)
	}
	if out.Report.Summary != nil {
		t.Error("fallback report should be the pre-update row")
	}
	if out.Narrative == nil {
		t.Error("generated narrative should still be returned")
	}
}

func TestGenerate_VideoAnalyticsFailureIsBestEffort(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{}
	videos := &fakeVideos{batchErr: errors.New("disk full")}
	summarizer := &fakeSummarizer{narrative: testNarrative()}
	svc := NewReportService(source, store, videos, summarizer, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("video analytics failure must not fail the operation: %v", err)
	}
	if out.Report == nil || out.Narrative == nil {
		t.Errorf("pipeline should complete despite video insert failure: %+v", out)
	}
}

func TestGenerate_SubscriberGrowthFromBaseline(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{
		baseline: &model.MonthlyReport{
			ChannelID:        "UC123",
			ReportDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			TotalSubscribers: 47000,
		},
	}
	svc := NewReportService(source, store, &fakeVideos{}, &fakeSummarizer{narrative: testNarrative()}, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out.Report.SubscriberGrowth != 3000 {
		t.Errorf("subscriber growth = %d, want 3000", out.Report.SubscriberGrowth)
	}
}

func TestGenerate_SubscriberGrowthZeroWithoutBaseline(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{}
	svc := NewReportService(source, store, &fakeVideos{}, &fakeSummarizer{narrative: testNarrative()}, nil)

	out, err := svc.Generate(context.Background(), "UC123", 2024, 2)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if out.Report.SubscriberGrowth != 0 {
		t.Errorf("subscriber growth = %d, want 0 (no baseline)", out.Report.SubscriberGrowth)
	}
}

func TestGenerate_NotIdempotent(t *testing.T) {
	source := &fakeSource{figures: testFigures()}
	store := &fakeStore{}
	svc := NewReportService(source, store, &fakeVideos{}, &fakeSummarizer{narrative: testNarrative()}, nil)

	ctx := context.Background()
	if _, err := svc.Generate(ctx, "UC123", 2024, 2); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := svc.Generate(ctx, "UC123", 2024, 2); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if store.createCalls != 2 {
		t.Errorf("create calls = %d, want 2 (duplicate runs create duplicate rows)", store.createCalls)
	}
}
