package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/model"
)

func handleError(err error) error {
	if vErr, ok := model.AsValidationError(err); ok {
		return status.Error(codes.InvalidArgument, vErr.Message)
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "record not found")
	case errors.Is(err, model.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, "an account with this email already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid email or password")
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenMismatch):
		return status.Error(codes.Unauthenticated, "session is no longer valid")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
