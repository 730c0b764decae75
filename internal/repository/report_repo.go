package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KataCreate/report-sys/internal/model"
)

// DefaultReportLimit caps report listings when the caller passes no limit.
const DefaultReportLimit = 12

const reportColumns = `
	id, report_date, channel_id, total_views, total_subscribers, subscriber_growth,
	total_likes, total_comments, average_view_duration, average_view_percentage,
	total_watch_time, video_count, summary, insights, recommendations,
	created_at, updated_at`

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

func scanReport(row pgx.Row) (*model.MonthlyReport, error) {
	var rep model.MonthlyReport
	err := row.Scan(
		&rep.ID, &rep.ReportDate, &rep.ChannelID, &rep.TotalViews, &rep.TotalSubscribers,
		&rep.SubscriberGrowth, &rep.TotalLikes, &rep.TotalComments, &rep.AverageViewDuration,
		&rep.AverageViewPercentage, &rep.TotalWatchTime, &rep.VideoCount,
		&rep.Summary, &rep.Insights, &rep.Recommendations, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Create inserts a report with the numeric fields populated and the narrative
// fields absent, returning the stored row with its server-assigned ID and
// timestamps. Single-row, single-statement: step independence in the
// generation pipeline means no transaction spans this write.
func (r *ReportRepo) Create(ctx context.Context, rep *model.MonthlyReport) (*model.MonthlyReport, error) {
	query := `
		INSERT INTO monthly_reports (
			report_date, channel_id, total_views, total_subscribers, subscriber_growth,
			total_likes, total_comments, average_view_duration, average_view_percentage,
			total_watch_time, video_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + reportColumns

	out, err := scanReport(r.pool.QueryRow(ctx, query,
		rep.ReportDate, rep.ChannelID, rep.TotalViews, rep.TotalSubscribers,
		rep.SubscriberGrowth, rep.TotalLikes, rep.TotalComments, rep.AverageViewDuration,
		rep.AverageViewPercentage, rep.TotalWatchTime, rep.VideoCount,
	))
	if err != nil {
		return nil, wrap("create report", err)
	}
	return out, nil
}

// FindByID returns a single report.
func (r *ReportRepo) FindByID(ctx context.Context, id string) (*model.MonthlyReport, error) {
	query := `SELECT` + reportColumns + ` FROM monthly_reports WHERE id = $1`
	rep, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, wrap("find report", err)
	}
	return rep, nil
}

// List returns reports ordered by period descending. A non-positive limit
// falls back to DefaultReportLimit.
func (r *ReportRepo) List(ctx context.Context, limit int) ([]model.MonthlyReport, error) {
	if limit <= 0 {
		limit = DefaultReportLimit
	}
	query := `SELECT` + reportColumns + `
		FROM monthly_reports
		ORDER BY report_date DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, wrap("list reports", err)
	}
	defer rows.Close()

	var reports []model.MonthlyReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, wrap("scan report", err)
		}
		reports = append(reports, *rep)
	}
	return reports, wrap("list reports", rows.Err())
}

// FindByChannelAndPeriod returns the report for an exact (channel, period)
// pair, used as the subscriber-growth baseline. When duplicate runs created
// more than one row for the month, the most recent one wins.
func (r *ReportRepo) FindByChannelAndPeriod(ctx context.Context, channelID string, period time.Time) (*model.MonthlyReport, error) {
	query := `SELECT` + reportColumns + `
		FROM monthly_reports
		WHERE channel_id = $1 AND report_date = $2
		ORDER BY created_at DESC
		LIMIT 1`

	rep, err := scanReport(r.pool.QueryRow(ctx, query, channelID, period))
	if err != nil {
		return nil, wrap("find report by period", err)
	}
	return rep, nil
}

// UpdateNarrative attaches the three narrative fields to an existing report
// and returns the stored row. Called at most once per report, shortly after
// creation.
func (r *ReportRepo) UpdateNarrative(ctx context.Context, id string, n *model.Narrative) (*model.MonthlyReport, error) {
	query := `
		UPDATE monthly_reports
		SET summary = $1, insights = $2, recommendations = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING` + reportColumns

	rep, err := scanReport(r.pool.QueryRow(ctx, query, n.Summary, n.Insights, n.Recommendations, id))
	if err != nil {
		return nil, wrap("update report narrative", err)
	}
	return rep, nil
}

// Delete removes a report; its video analytics rows go with it via cascade.
func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM monthly_reports WHERE id = $1`, id)
	if err != nil {
		return wrap("delete report", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("delete report", pgx.ErrNoRows)
	}
	return nil
}

// Stats returns the dashboard aggregate over all reports.
func (r *ReportRepo) Stats(ctx context.Context) (*model.ReportStats, error) {
	var stats model.ReportStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(ROUND(AVG(total_views)), 0),
		       COALESCE(ROUND(AVG(total_subscribers)), 0)
		FROM monthly_reports`).Scan(
		&stats.TotalReports, &stats.AverageViews, &stats.AverageSubscribers)
	if err != nil {
		return nil, wrap("report stats", err)
	}

	if stats.TotalReports == 0 {
		return &stats, nil
	}

	query := `SELECT` + reportColumns + `
		FROM monthly_reports
		ORDER BY report_date DESC
		LIMIT 1`
	latest, err := scanReport(r.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, wrap("report stats", err)
	}
	stats.LatestReport = latest
	return &stats, nil
}
