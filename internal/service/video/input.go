package video

import (
	"io"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// Upload is an incoming media file stream plus its metadata.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// PublishInput holds the parameters for publishing a new video.
type PublishInput struct {
	Title       string
	Description string
	Duration    float64
	VideoFile   *Upload
	Thumbnail   *Upload
}

// Validate checks all fields and collects all errors.
func (i *PublishInput) Validate() error {
	var errs []domain.FieldError

	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 200)"})
	}
	if len(i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 5000)"})
	}
	if i.Duration < 0 {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "must be >= 0"})
	}
	if i.VideoFile == nil {
		errs = append(errs, domain.FieldError{Field: "video_file", Message: "required"})
	}
	if i.Thumbnail == nil {
		errs = append(errs, domain.FieldError{Field: "thumbnail", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for updating video details.
type UpdateInput struct {
	VideoID     uuid.UUID
	Title       string
	Description string
}

// Validate checks all fields and collects all errors.
func (i *UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.VideoID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "video_id", Message: "required"})
	}
	if i.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	} else if len(i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long (max 200)"})
	}
	if len(i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 5000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds the parameters for the public video listing.
type ListInput struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDesc bool
	OwnerID  *uuid.UUID
}
