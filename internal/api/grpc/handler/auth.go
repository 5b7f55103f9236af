package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/api/grpc/wire"
	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

var _ wire.AuthServer = (*Auth)(nil)

// AuthService defines account and session operations.
type AuthService interface {
	SignUp(ctx context.Context, params model.SignUpParams) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	StartDemo(ctx context.Context) (model.Session, error)
	Refresh(ctx context.Context, refreshToken string) (model.Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// SignUp registers an account and opens a session for it.
func (h *Auth) SignUp(ctx context.Context, req *wire.SignUpRequest) (*wire.Session, error) {
	h.logger.Debug("Auth handler: processing sign up request", "email", req.Email)

	session, err := h.authService.SignUp(ctx, model.SignUpParams{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.logger.Error("Auth handler: sign up failed",
			"email", req.Email,
			"error", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: sign up completed", "user_id", session.UserID)
	return toSession(session), nil
}

// Login opens a session for an existing account.
func (h *Auth) Login(ctx context.Context, req *wire.LoginRequest) (*wire.Session, error) {
	h.logger.Debug("Auth handler: processing login request", "email", req.Email)

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed", "user_id", session.UserID)
	return toSession(session), nil
}

// StartDemo opens a demo session backed by the local cache only.
func (h *Auth) StartDemo(ctx context.Context, _ *wire.Empty) (*wire.Session, error) {
	session, err := h.authService.StartDemo(ctx)
	if err != nil {
		h.logger.Error("Auth handler: demo start failed", "error", err)
		return nil, handleError(err)
	}

	return toSession(session), nil
}

// Refresh exchanges a refresh token for a new token pair.
func (h *Auth) Refresh(ctx context.Context, req *wire.RefreshRequest) (*wire.Session, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	session, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful")
	return toSession(session), nil
}

// Logout revokes a refresh token.
func (h *Auth) Logout(ctx context.Context, req *wire.RefreshRequest) (*wire.Empty, error) {
	h.logger.Debug("Auth handler: processing logout request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"error", err)
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: logout successful")
	return &wire.Empty{}, nil
}

func toSession(s model.Session) *wire.Session {
	return &wire.Session{
		UserID:       s.UserID,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		Demo:         s.Demo,
	}
}
