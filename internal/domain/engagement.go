package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget discriminates what kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether t is one of the known target kinds.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like is an engagement edge: LikedBy likes exactly one of {video, comment,
// tweet}. Exactly one target field is non-nil; the database enforces this
// with a CHECK constraint, and partial unique indexes guarantee at most one
// edge per (LikedBy, target) pair.
type Like struct {
	ID        uuid.UUID
	LikedBy   uuid.UUID
	VideoID   *uuid.UUID
	CommentID *uuid.UUID
	TweetID   *uuid.UUID
	CreatedAt time.Time
}

// Target returns the populated target kind and ID.
func (l Like) Target() (LikeTarget, uuid.UUID) {
	switch {
	case l.VideoID != nil:
		return LikeTargetVideo, *l.VideoID
	case l.CommentID != nil:
		return LikeTargetComment, *l.CommentID
	default:
		return LikeTargetTweet, *l.TweetID
	}
}

// Subscription is an engagement edge: SubscriberID follows the channel of
// ChannelID. UNIQUE (subscriber_id, channel_id) guarantees at most one
// active edge per pair.
type Subscription struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}
