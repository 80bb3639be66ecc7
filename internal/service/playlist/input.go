package playlist

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// CreateInput holds the parameters for creating a playlist.
type CreateInput struct {
	Name        string
	Description string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 100)"})
	}
	if len(i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a playlist.
type UpdateInput struct {
	PlaylistID  uuid.UUID
	Name        string
	Description string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.PlaylistID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "playlist_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if len(i.Name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 100)"})
	}
	if len(i.Description) > 1000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
