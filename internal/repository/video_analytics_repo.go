package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KataCreate/report-sys/internal/model"
)

type VideoAnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewVideoAnalyticsRepo(pool *pgxpool.Pool) *VideoAnalyticsRepo {
	return &VideoAnalyticsRepo{pool: pool}
}

// CreateBatch inserts per-video snapshot rows for one report. Each insert is
// its own single-row statement; a failure surfaces the first error and leaves
// earlier rows in place (the batch is best-effort enrichment, not a unit).
func (r *VideoAnalyticsRepo) CreateBatch(ctx context.Context, reportID string, videos []model.VideoAnalytics) error {
	query := `
		INSERT INTO video_analytics (
			report_id, video_id, video_title, views, likes, comments,
			view_duration, view_percentage, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, v := range videos {
		_, err := r.pool.Exec(ctx, query,
			reportID, v.VideoID, v.VideoTitle, v.Views, v.Likes, v.Comments,
			v.ViewDuration, v.ViewPercentage, v.PublishedAt,
		)
		if err != nil {
			return wrap("create video analytics", err)
		}
	}
	return nil
}

// ListByReport returns a report's video snapshots ordered by views descending.
func (r *VideoAnalyticsRepo) ListByReport(ctx context.Context, reportID string) ([]model.VideoAnalytics, error) {
	query := `
		SELECT id, report_id, video_id, video_title, views, likes, comments,
		       view_duration, view_percentage, published_at, created_at
		FROM video_analytics
		WHERE report_id = $1
		ORDER BY views DESC`

	rows, err := r.pool.Query(ctx, query, reportID)
	if err != nil {
		return nil, wrap("list video analytics", err)
	}
	defer rows.Close()

	var videos []model.VideoAnalytics
	for rows.Next() {
		var v model.VideoAnalytics
		err := rows.Scan(
			&v.ID, &v.ReportID, &v.VideoID, &v.VideoTitle, &v.Views, &v.Likes,
			&v.Comments, &v.ViewDuration, &v.ViewPercentage, &v.PublishedAt, &v.CreatedAt,
		)
		if err != nil {
			return nil, wrap("scan video analytics", err)
		}
		videos = append(videos, v)
	}
	return videos, wrap("list video analytics", rows.Err())
}
