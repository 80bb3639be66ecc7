package tweet

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// CreateInput holds the parameters for posting a tweet.
type CreateInput struct {
	Content string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > 1000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a tweet.
type UpdateInput struct {
	TweetID uuid.UUID
	Content string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.TweetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "tweet_id", Message: "required"})
	}
	if i.Content == "" {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	} else if len(i.Content) > 1000 {
		errs = append(errs, domain.FieldError{Field: "content", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
