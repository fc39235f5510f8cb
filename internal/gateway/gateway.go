// Package gateway is the boundary to the chat platform: identity
// resolution plus sending and deleting channel messages.
package gateway

import (
	"context"
	"errors"
)

//go:generate mockgen -source=gateway.go -destination=mock.go -package=gateway

var (
	// ErrNotFound covers spaces, channels, users and messages the platform
	// no longer knows about.
	ErrNotFound = errors.New("gateway: not found")
	// ErrPermissionDenied is returned when the bot lacks the permission for
	// an operation, typically deleting another message. Callers treat it as
	// non-fatal.
	ErrPermissionDenied = errors.New("gateway: permission denied")
	ErrSendFailed       = errors.New("gateway: message send failed")
)

// Space is a resolved community space ("guild"/"server").
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Channel is a resolved text channel within a space.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Member is a user's identity within a space. Mention is the platform's
// addressable form, DisplayName the human-readable one.
type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Mention     string `json:"mention"`
}

// MessageRef is the opaque handle of a sent message.
type MessageRef struct {
	ID string `json:"id"`
}

type ChatGateway interface {
	ResolveSpace(ctx context.Context, spaceID string) (*Space, error)
	ResolveChannel(ctx context.Context, spaceID, channelID string) (*Channel, error)
	ResolveMember(ctx context.Context, spaceID, userID string) (*Member, error)

	// SendMessage posts content to a channel, optionally as a reply to
	// replyToID (empty for a plain message).
	SendMessage(ctx context.Context, channelID, replyToID, content string) (*MessageRef, error)

	// DeleteMessage is best-effort cleanup of a previous notification.
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	// Ping reports whether the gateway endpoint is reachable.
	Ping(ctx context.Context) error
}
