package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KataCreate/report-sys/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// Create inserts a new channel and returns the stored row.
func (r *ChannelRepo) Create(ctx context.Context, ch *model.Channel) (*model.Channel, error) {
	query := `
		INSERT INTO channels (channel_id, channel_name, channel_url, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	out := *ch
	err := r.pool.QueryRow(ctx, query,
		ch.ChannelID, ch.ChannelName, ch.ChannelURL, ch.IsActive, ch.CreatedBy,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, wrap("create channel", err)
	}
	return &out, nil
}

// FindByChannelID returns a single channel by its provider-assigned ID.
func (r *ChannelRepo) FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error) {
	query := `
		SELECT id, channel_id, channel_name, channel_url, is_active, created_by, created_at
		FROM channels
		WHERE channel_id = $1`

	var ch model.Channel
	err := r.pool.QueryRow(ctx, query, channelID).Scan(
		&ch.ID, &ch.ChannelID, &ch.ChannelName, &ch.ChannelURL,
		&ch.IsActive, &ch.CreatedBy, &ch.CreatedAt,
	)
	if err != nil {
		return nil, wrap("find channel", err)
	}
	return &ch, nil
}

// ListAll returns every registered channel in insertion order.
func (r *ChannelRepo) ListAll(ctx context.Context) ([]model.Channel, error) {
	return r.list(ctx, `
		SELECT id, channel_id, channel_name, channel_url, is_active, created_by, created_at
		FROM channels
		ORDER BY created_at ASC`)
}

// ListActive returns channels with the activation flag set, in insertion order.
func (r *ChannelRepo) ListActive(ctx context.Context) ([]model.Channel, error) {
	return r.list(ctx, `
		SELECT id, channel_id, channel_name, channel_url, is_active, created_by, created_at
		FROM channels
		WHERE is_active = true
		ORDER BY created_at ASC`)
}

func (r *ChannelRepo) list(ctx context.Context, query string) ([]model.Channel, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrap("list channels", err)
	}
	defer rows.Close()

	var channels []model.Channel
	for rows.Next() {
		var ch model.Channel
		err := rows.Scan(
			&ch.ID, &ch.ChannelID, &ch.ChannelName, &ch.ChannelURL,
			&ch.IsActive, &ch.CreatedBy, &ch.CreatedAt,
		)
		if err != nil {
			return nil, wrap("scan channel", err)
		}
		channels = append(channels, ch)
	}
	return channels, wrap("list channels", rows.Err())
}

// SetActive toggles the activation flag.
func (r *ChannelRepo) SetActive(ctx context.Context, channelID string, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE channels SET is_active = $1 WHERE channel_id = $2`, active, channelID)
	if err != nil {
		return wrap("update channel", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("update channel", pgx.ErrNoRows)
	}
	return nil
}

// Delete removes a channel. Dependent reports and video analytics are
// removed by the store-level ON DELETE CASCADE in the schema.
func (r *ChannelRepo) Delete(ctx context.Context, channelID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM channels WHERE channel_id = $1`, channelID)
	if err != nil {
		return wrap("delete channel", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("delete channel", pgx.ErrNoRows)
	}
	return nil
}
