package domain

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered set of videos owned by one user. Membership has
// set semantics: a video appears at most once.
type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
