package handler

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dtroode/contacts-server/internal/api/http/respond"
	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

const sniffLen = 512

// AvatarService stores and serves user avatars.
type AvatarService interface {
	UpdateAvatar(ctx context.Context, user model.User, reader io.Reader, size int64, contentType string) (model.User, error)
	Avatar(ctx context.Context, user model.User) (io.ReadCloser, error)
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.AvatarURL(),
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt,
	}
}

// Users serves avatar upload and download for the authenticated user.
type Users struct {
	usersService   AvatarService
	contextManager model.ContextManager
	maxAvatarBytes int64
	logger         *logger.Logger
}

func NewUsers(usersService AvatarService, contextManager model.ContextManager, maxAvatarBytes int64, logger *logger.Logger) *Users {
	return &Users{
		usersService:   usersService,
		contextManager: contextManager,
		maxAvatarBytes: maxAvatarBytes,
		logger:         logger,
	}
}

// UpdateAvatar reads the multipart "file" field and stores it as the avatar.
func (h *Users) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		respond.Error(w, h.logger, model.ErrUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBytes+sniffLen*2)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Detail(w, http.StatusBadRequest, "file is too large")
			return
		}
		respond.Detail(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > h.maxAvatarBytes {
		respond.Detail(w, http.StatusBadRequest, "file is too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h.logger.Debug("Users handler: processing avatar upload",
		"user_id", user.ID,
		"size", header.Size)

	updated, err := h.usersService.UpdateAvatar(r.Context(), user, file, header.Size, contentType)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusOK, newUserResponse(updated))
}

// Avatar streams the stored avatar of the authenticated user.
func (h *Users) Avatar(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		respond.Error(w, h.logger, model.ErrUnauthorized)
		return
	}

	rc, err := h.usersService.Avatar(r.Context(), user)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, sniffLen)
	head, _ := br.Peek(sniffLen)
	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, br); err != nil {
		h.logger.Error("Users handler: failed to stream avatar",
			"user_id", user.ID,
			"error", err.Error())
	}
}
