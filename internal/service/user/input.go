package user

import (
	"io"
	"strings"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// Upload is an incoming media file stream plus its metadata.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RegisterInput holds the parameters for creating an account. Avatar is
// optional.
type RegisterInput struct {
	Email    string
	Username string
	FullName string
	Password string
	Avatar   *Upload
}

// Validate checks all fields and collects all errors.
func (i *RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if !strings.Contains(i.Email, "@") {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid"})
	}
	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "required"})
	} else if len(i.Username) > 50 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "too long (max 50)"})
	}
	if i.FullName == "" {
		errs = append(errs, domain.FieldError{Field: "full_name", Message: "required"})
	}
	if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too short (min 8)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// LoginInput holds the credentials for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i *LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
