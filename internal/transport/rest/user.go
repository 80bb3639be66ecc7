package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/viewtube-backend/internal/domain"
	usersvc "github.com/heartmarshall/viewtube-backend/internal/service/user"
	"github.com/heartmarshall/viewtube-backend/internal/view"
)

// maxMultipartMemory bounds how much of a multipart body is buffered in
// memory; the rest spills to temp files.
const maxMultipartMemory = 32 << 20

type userService interface {
	Register(ctx context.Context, in usersvc.RegisterInput) (domain.User, error)
	Login(ctx context.Context, in usersvc.LoginInput) (string, domain.User, error)
	Me(ctx context.Context) (domain.User, error)
	ChannelProfile(ctx context.Context, username string) (domain.ChannelProfile, error)
	WatchHistory(ctx context.Context, page, pageSize int) (view.Page[domain.WatchHistoryItem], error)
}

// UserHandler serves account, profile and watch-history endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CoverURL  *string   `json:"coverUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		CoverURL:  u.CoverURL,
		CreatedAt: u.CreatedAt,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

// Register handles POST /api/users/register. The body is multipart form
// data with an optional avatar file, or plain JSON when no avatar is sent.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := usersvc.RegisterInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		in.Email = r.FormValue("email")
		in.Username = r.FormValue("username")
		in.FullName = r.FormValue("fullName")
		in.Password = r.FormValue("password")

		avatar, cleanup, err := formUpload(r, "avatar")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid avatar upload")
			return
		}
		defer cleanup()
		in.Avatar = avatar
	} else {
		var req struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			FullName string `json:"fullName"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		in.Email = req.Email
		in.Username = req.Username
		in.FullName = req.FullName
		in.Password = req.Password
	}

	u, err := h.svc.Register(r.Context(), in)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(u))
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, u, err := h.svc.Login(r.Context(), usersvc.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: toUserResponse(u)})
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Me(r.Context())
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// ChannelProfile handles GET /api/channels/{username}.
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.ChannelProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// WatchHistory handles GET /api/users/me/history.
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	items, err := h.svc.WatchHistory(r.Context(), page, pageSize)
	if err != nil {
		handleError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// formUpload extracts a named file part as an upload. A missing part is not
// an error; the returned upload is nil. The cleanup closes the part and is
// safe to defer unconditionally.
func formUpload(r *http.Request, field string) (*usersvc.Upload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return &usersvc.Upload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Size:        header.Size,
		Content:     file,
	}, func() { file.Close() }, nil
}

func partContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
