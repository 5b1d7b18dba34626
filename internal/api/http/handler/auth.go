package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/contacts-server/internal/api/http/respond"
	"github.com/dtroode/contacts-server/internal/logger"
)

// EmailConfirmer confirms the email encoded in a verification token.
type EmailConfirmer interface {
	ConfirmEmail(ctx context.Context, token string) (bool, error)
}

// Auth serves the confirmation link sent by email.
type Auth struct {
	authService EmailConfirmer
	logger      *logger.Logger
}

func NewAuth(authService EmailConfirmer, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

func (h *Auth) ConfirmedEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	already, err := h.authService.ConfirmEmail(r.Context(), token)
	if err != nil {
		respond.Error(w, h.logger, err)
		return
	}

	msg := "Email confirmed"
	if already {
		msg = "Your email is already confirmed"
	}
	respond.JSON(w, http.StatusOK, respond.MessageBody{Message: msg})
}
