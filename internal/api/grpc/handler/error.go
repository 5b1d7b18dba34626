package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/contacts-server/internal/model"
	"github.com/dtroode/contacts-server/internal/validate"
)

func handleError(err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, model.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, model.ErrUnauthorized.Error())
	case errors.Is(err, model.ErrUnprocessableToken):
		return status.Error(codes.FailedPrecondition, model.ErrUnprocessableToken.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "account already exists")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
