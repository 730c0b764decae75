package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/youtube"
)

// SourceClient is the statistics-provider capability the orchestrator needs.
type SourceClient interface {
	FetchMonthlyFigures(ctx context.Context, channelID string, year, month int) (*youtube.MonthlyFigures, error)
}

// Summarizer is the text-generation capability.
type Summarizer interface {
	Summarize(ctx context.Context, report *model.MonthlyReport) (*model.Narrative, error)
}

// ReportStore is the persistence capability for monthly reports.
type ReportStore interface {
	Create(ctx context.Context, rep *model.MonthlyReport) (*model.MonthlyReport, error)
	FindByID(ctx context.Context, id string) (*model.MonthlyReport, error)
	FindByChannelAndPeriod(ctx context.Context, channelID string, period time.Time) (*model.MonthlyReport, error)
	UpdateNarrative(ctx context.Context, id string, n *model.Narrative) (*model.MonthlyReport, error)
	List(ctx context.Context, limit int) ([]model.MonthlyReport, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.ReportStats, error)
}

// VideoStore is the persistence capability for per-video snapshots.
type VideoStore interface {
	CreateBatch(ctx context.Context, reportID string, videos []model.VideoAnalytics) error
	ListByReport(ctx context.Context, reportID string) ([]model.VideoAnalytics, error)
}

// GenerateOutcome is the result of one generation run. Narrative is nil and
// SummaryError non-empty when the narrative step degraded; the report itself
// is always present on success.
type GenerateOutcome struct {
	Report       *model.MonthlyReport
	Narrative    *model.Narrative
	SummaryError string
}

// ReportService sequences the report-generation pipeline:
//
//	fetch (must succeed) → persist (must succeed) → summarize (best effort)
//
// A slow or failing text-generation provider never blocks the numeric
// report; only the fetch and the initial persist can abort the run.
type ReportService struct {
	source     SourceClient
	store      ReportStore
	videos     VideoStore
	summarizer Summarizer
	cache      *CacheService
}

func NewReportService(source SourceClient, store ReportStore, videos VideoStore, summarizer Summarizer, cache *CacheService) *ReportService {
	return &ReportService{
		source:     source,
		store:      store,
		videos:     videos,
		summarizer: summarizer,
		cache:      cache,
	}
}

// Generate runs the pipeline for one (channel, year, month). Each external
// call is attempted exactly once; duplicate runs for the same month create
// duplicate rows.
func (s *ReportService) Generate(ctx context.Context, channelID string, year, month int) (*GenerateOutcome, error) {
	// Fetching: the only stage besides the initial persist whose failure
	// aborts the whole operation.
	figures, err := s.source.FetchMonthlyFigures(ctx, channelID, year, month)
	if err != nil {
		return nil, err
	}

	rep := &model.MonthlyReport{
		ReportDate:            figures.ReportDate,
		ChannelID:             figures.ChannelID,
		TotalViews:            figures.TotalViews,
		TotalSubscribers:      figures.TotalSubscribers,
		SubscriberGrowth:      s.subscriberGrowth(ctx, figures),
		TotalLikes:            figures.TotalLikes,
		TotalComments:         figures.TotalComments,
		AverageViewDuration:   figures.AverageViewDuration,
		AverageViewPercentage: figures.AverageViewPercentage,
		TotalWatchTime:        figures.TotalWatchTime,
		VideoCount:            figures.VideoCount,
	}

	saved, err := s.store.Create(ctx, rep)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateReportLists(ctx); err != nil {
			log.Printf("cache: invalidate report lists error: %v", err)
		}
	}

	// Per-video enrichment is best-effort; the report stands without it.
	if len(figures.Videos) > 0 {
		if err := s.videos.CreateBatch(ctx, saved.ID, videoRows(figures)); err != nil {
			log.Printf("report %s: video analytics insert failed: %v", saved.ID, err)
		}
	}

	narrative, err := s.summarizer.Summarize(ctx, saved)
	if err != nil {
		// Degraded success: no update call is made for the narrative fields.
		log.Printf("report %s: summary generation failed: %v", saved.ID, err)
		return &GenerateOutcome{
			Report:       saved,
			SummaryError: "Failed to generate AI summary",
		}, nil
	}

	updated, err := s.store.UpdateNarrative(ctx, saved.ID, narrative)
	if err != nil {
		log.Printf("report %s: narrative update failed: %v", saved.ID, err)
		return &GenerateOutcome{Report: saved, Narrative: narrative}, nil
	}

	// Re-read for the canonical stored state (server-assigned update
	// timestamp); fall back to the pre-update row on failure.
	final, err := s.store.FindByID(ctx, updated.ID)
	if err != nil {
		log.Printf("report %s: re-read after narrative update failed: %v", saved.ID, err)
		return &GenerateOutcome{Report: saved, Narrative: narrative}, nil
	}

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, final.ID, final); err != nil {
			log.Printf("cache: report set error: %v", err)
		}
	}

	return &GenerateOutcome{Report: final, Narrative: narrative}, nil
}

// subscriberGrowth computes the signed delta against the previous month's
// persisted report for the channel; zero when no baseline row exists.
func (s *ReportService) subscriberGrowth(ctx context.Context, figures *youtube.MonthlyFigures) int64 {
	prevPeriod := figures.ReportDate.AddDate(0, -1, 0)
	baseline, err := s.store.FindByChannelAndPeriod(ctx, figures.ChannelID, prevPeriod)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("channel %s: baseline lookup failed: %v", figures.ChannelID, err)
		}
		return 0
	}
	return figures.TotalSubscribers - baseline.TotalSubscribers
}

func videoRows(figures *youtube.MonthlyFigures) []model.VideoAnalytics {
	rows := make([]model.VideoAnalytics, 0, len(figures.Videos))
	for _, v := range figures.Videos {
		rows = append(rows, model.VideoAnalytics{
			VideoID:        v.VideoID,
			VideoTitle:     v.Title,
			Views:          v.Views,
			Likes:          v.Likes,
			Comments:       v.Comments,
			ViewDuration:   figures.AverageViewDuration,
			ViewPercentage: figures.AverageViewPercentage,
			PublishedAt:    v.PublishedAt,
		})
	}
	return rows
}

// List returns reports newest-period-first, cache-aside.
func (s *ReportService) List(ctx context.Context, limit int) ([]model.MonthlyReport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetReportList(ctx, limit)
		if err != nil {
			log.Printf("cache: report list get error: %v", err)
		} else if cached != nil {
			var reports []model.MonthlyReport
			if err := json.Unmarshal(cached, &reports); err == nil {
				return reports, nil
			}
		}
	}

	reports, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []model.MonthlyReport{}
	}

	if s.cache != nil {
		if err := s.cache.SetReportList(ctx, limit, reports); err != nil {
			log.Printf("cache: report list set error: %v", err)
		}
	}
	return reports, nil
}

// Get returns one report, cache-aside.
func (s *ReportService) Get(ctx context.Context, id string) (*model.MonthlyReport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetReport(ctx, id)
		if err != nil {
			log.Printf("cache: report get error: %v", err)
		} else if cached != nil {
			var rep model.MonthlyReport
			if err := json.Unmarshal(cached, &rep); err == nil {
				return &rep, nil
			}
		}
	}

	rep, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, id, rep); err != nil {
			log.Printf("cache: report set error: %v", err)
		}
	}
	return rep, nil
}

// Delete removes a report (video analytics cascade with it) and drops it
// from cache.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateReport(ctx, id); err != nil {
			log.Printf("cache: invalidate report error: %v", err)
		}
		if err := s.cache.InvalidateReportLists(ctx); err != nil {
			log.Printf("cache: invalidate report lists error: %v", err)
		}
	}
	return nil
}

// Stats returns the dashboard aggregate.
func (s *ReportService) Stats(ctx context.Context) (*model.ReportStats, error) {
	return s.store.Stats(ctx)
}

// Videos returns a report's per-video snapshots, views descending.
func (s *ReportService) Videos(ctx context.Context, reportID string) ([]model.VideoAnalytics, error) {
	videos, err := s.videos.ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.VideoAnalytics{}
	}
	return videos, nil
}
