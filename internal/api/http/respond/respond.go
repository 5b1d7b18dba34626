// Package respond writes JSON responses of the HTTP surface.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/validate"
)

// ErrorBody is the payload of every failed request.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// MessageBody is the payload of requests that only report an outcome.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload with the given status code.
func JSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// Detail writes an error body with a client facing message.
func Detail(w http.ResponseWriter, statusCode int, detail string) {
	JSON(w, statusCode, ErrorBody{Detail: detail})
}

// Error maps err to a status code and writes it. Unexpected errors are logged
// and hidden from the client.
func Error(w http.ResponseWriter, log *logger.Logger, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		Detail(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, model.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		Detail(w, http.StatusUnauthorized, model.ErrUnauthorized.Error())
	case errors.Is(err, model.ErrUnprocessableToken):
		Detail(w, http.StatusUnprocessableEntity, model.ErrUnprocessableToken.Error())
	case errors.Is(err, model.ErrNotFound):
		Detail(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrAlreadyExists):
		Detail(w, http.StatusConflict, "account already exists")
	default:
		log.Error("HTTP: unhandled error", "error", err.Error())
		Detail(w, http.StatusInternalServerError, "internal server error")
	}
}
