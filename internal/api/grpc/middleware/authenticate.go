package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the caller identity from bearer tokens.
type TokenService interface {
	Identify(ctx context.Context, token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses Authorization header, validates token and returns a context with the identity.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimPrefix(authHeaders[0], "Bearer ")
		}
	}

	identity, authErr := m.authenticate(ctx, tokenString)
	if authErr != nil {
		m.logger.Debug("Authenticate middleware: request rejected", "error", authErr)
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetIdentityToContext(ctx, identity), nil
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (model.Identity, error) {
	if tokenString == "" {
		return model.Identity{}, errMissingToken
	}

	identity, err := m.tokenService.Identify(ctx, tokenString)
	if err != nil {
		return model.Identity{}, errInvalidToken
	}

	if identity.UserID == uuid.Nil {
		return model.Identity{}, errInvalidToken
	}

	return identity, nil
}
