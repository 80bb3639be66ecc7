package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/viewtube-backend/internal/auth"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// Register creates a new account. The avatar upload is optional; when
// present it is stored before the row is written and removed again if the
// insert fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if in.Avatar != nil {
		ref, err := s.media.Store(ctx, "avatars", in.Avatar.Filename, in.Avatar.ContentType, in.Avatar.Size, in.Avatar.Content)
		if err != nil {
			return domain.User{}, err
		}
		u.AvatarURL = &ref.URL
		u.AvatarStorageID = &ref.StorageID
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if u.AvatarStorageID != nil {
			s.removeObject(ctx, *u.AvatarStorageID)
		}
		return domain.User{}, err
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", created.ID.String()),
		slog.String("username", created.Username),
	)

	return created, nil
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, domain.User, error) {
	if err := in.Validate(); err != nil {
		return "", domain.User{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.User{}, domain.ErrUnauthorized
		}
		return "", domain.User{}, err
	}

	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return "", domain.User{}, domain.ErrUnauthorized
	}

	token, err := s.tokens.GenerateAccessToken(u.ID)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

// removeObject removes a stored object, logging instead of failing.
func (s *Service) removeObject(ctx context.Context, storageID string) {
	if err := s.media.Remove(ctx, storageID); err != nil {
		s.log.ErrorContext(ctx, "remove orphaned media object",
			slog.String("storage_id", storageID),
			slog.String("error", err.Error()),
		)
	}
}
