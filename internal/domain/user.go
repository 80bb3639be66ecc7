package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account on the platform. A user is both a viewer and,
// through their uploaded videos, a channel others can subscribe to.
type User struct {
	ID              uuid.UUID
	Email           string
	Username        string
	FullName        string
	AvatarURL       *string
	AvatarStorageID *string
	CoverURL        *string
	PasswordHash    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// WatchHistoryEntry records that a user viewed a video. A repeated view
// refreshes WatchedAt instead of producing a second entry.
type WatchHistoryEntry struct {
	UserID    uuid.UUID
	VideoID   uuid.UUID
	WatchedAt time.Time
}
