package comment

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// AddInput holds the parameters for adding a comment to a video.
type AddInput struct {
	VideoID uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i *AddInput) Validate() error {
	var errs []domain.FieldError

	if i.VideoID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "video_id", Message: "required"})
	}
	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > 2000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a comment.
type UpdateInput struct {
	CommentID uuid.UUID
	Content   string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "comment_id", Message: "required"})
	}
	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > 2000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
