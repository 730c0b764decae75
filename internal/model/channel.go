package model

import "time"

// Channel is a tracked YouTube channel registered by an operator.
type Channel struct {
	ID          string    `json:"id"`
	ChannelID   string    `json:"channelId"`
	ChannelName string    `json:"channelName"`
	ChannelURL  string    `json:"channelUrl"`
	IsActive    bool      `json:"isActive"`
	CreatedBy   *string   `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AddChannelRequest is the API request body for registering a channel.
type AddChannelRequest struct {
	ChannelID string `json:"channelId"`
}

// UpdateChannelRequest is the API request body for toggling activation.
type UpdateChannelRequest struct {
	IsActive bool `json:"isActive"`
}
