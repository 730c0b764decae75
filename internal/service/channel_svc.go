package service

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/KataCreate/report-sys/internal/model"
	"github.com/KataCreate/report-sys/internal/youtube"
)

// ErrChannelExists is returned by Add when the channel is already registered.
var ErrChannelExists = errors.New("channel already registered")

// ChannelSource is the slice of the statistics provider the channel service
// needs: metadata lookup for validating an ID before registration.
type ChannelSource interface {
	FetchChannelSummary(ctx context.Context, channelID string) (*youtube.ChannelSummary, error)
}

// ChannelStore is the persistence capability for channels.
type ChannelStore interface {
	Create(ctx context.Context, ch *model.Channel) (*model.Channel, error)
	FindByChannelID(ctx context.Context, channelID string) (*model.Channel, error)
	ListAll(ctx context.Context) ([]model.Channel, error)
	ListActive(ctx context.Context) ([]model.Channel, error)
	SetActive(ctx context.Context, channelID string, active bool) error
	Delete(ctx context.Context, channelID string) error
}

type ChannelService struct {
	source ChannelSource
	store  ChannelStore
	cache  *CacheService
}

func NewChannelService(source ChannelSource, store ChannelStore, cache *CacheService) *ChannelService {
	return &ChannelService{source: source, store: store, cache: cache}
}

// Add validates the channel ID against the statistics provider and inserts
// the channel with the provider's display name and canonical URL. The owner
// reference is a weak filter key, not an enforced constraint. A channel that
// is already registered is rejected before any provider call is made.
func (s *ChannelService) Add(ctx context.Context, channelID string, createdBy *string) (*model.Channel, error) {
	if _, err := s.store.FindByChannelID(ctx, channelID); err == nil {
		return nil, ErrChannelExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	info, err := s.source.FetchChannelSummary(ctx, channelID)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, &model.Channel{
		ChannelID:   info.ID,
		ChannelName: info.Name,
		ChannelURL:  info.URL,
		IsActive:    true,
		CreatedBy:   createdBy,
	})
}

// List returns all registered channels.
func (s *ChannelService) List(ctx context.Context) ([]model.Channel, error) {
	channels, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.Channel{}
	}
	return channels, nil
}

// ListActive returns channels with the activation flag set.
func (s *ChannelService) ListActive(ctx context.Context) ([]model.Channel, error) {
	channels, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.Channel{}
	}
	return channels, nil
}

// SetActive toggles the activation flag.
func (s *ChannelService) SetActive(ctx context.Context, channelID string, active bool) error {
	return s.store.SetActive(ctx, channelID, active)
}

// Delete removes a channel; the store-level cascade removes its reports and
// their video analytics. Cached listings are stale afterwards, so drop them.
func (s *ChannelService) Delete(ctx context.Context, channelID string) error {
	if err := s.store.Delete(ctx, channelID); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateReportLists(ctx); err != nil {
			log.Printf("cache: invalidate report lists error: %v", err)
		}
	}
	return nil
}
