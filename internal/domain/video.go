package domain

import (
	"time"

	"github.com/google/uuid"
)

// MediaRef points to an object in remote media storage. URL is what clients
// stream from; StorageID is what the storage collaborator needs to delete it.
type MediaRef struct {
	URL       string
	StorageID string
}

// Video is a single uploaded video owned by one user.
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	VideoFile   MediaRef
	Thumbnail   MediaRef
	Duration    float64
	Views       int64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is attached to exactly one video and owned by one user.
type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tweet is a short standalone text post, not tied to any video.
type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
