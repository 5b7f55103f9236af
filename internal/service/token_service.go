package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/genoguard-server/internal/logger"
	"github.com/dtroode/genoguard-server/internal/model"
)

// TokenService provides high-level operations for issuing, refreshing,
// and revoking tokens. It composes the TokenManager and RefreshTokenStore.
type TokenService struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	users   model.UserStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, users model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, users: users, logger: logger}
}

// NOTE: Keep durations here in sync with the token manager. These are used
// only for persistence; cryptographic validity is checked against the JWT
// claims by the manager at parse time.
const (
	refreshTTL = 30 * 24 * time.Hour
)

// Issue creates an access/refresh pair for a registered identity.
func (s *TokenService) Issue(ctx context.Context, identity model.Identity) (model.Session, error) {
	access, err := s.manager.GenerateAccessToken(identity)
	if err != nil {
		return model.Session{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(identity.UserID)
	if err != nil {
		return model.Session{}, fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.persist(ctx, identity.UserID, jti, refresh, nil); err != nil {
		return model.Session{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.Session{UserID: identity.UserID, AccessToken: access, RefreshToken: refresh}, nil
}

// IssueDemo creates an access token for a demo identity. Nothing is
// persisted and no refresh token is issued.
func (s *TokenService) IssueDemo(identity model.Identity) (model.Session, error) {
	access, err := s.manager.GenerateAccessToken(identity)
	if err != nil {
		return model.Session{}, fmt.Errorf("issue demo access: %w", err)
	}
	return model.Session{UserID: identity.UserID, AccessToken: access, Demo: true}, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new
// pair is issued.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (model.Session, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.Session{}, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return model.Session{}, err
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), time.Now()); err != nil {
		s.logger.Warn("Token service: refresh rejected", "user_id", userID, "error", err)
		return model.Session{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("load user: %w", err)
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return model.Session{}, fmt.Errorf("revoke old refresh: %w", err)
	}

	identity := model.Identity{UserID: user.ID, Email: user.Email}
	access, err := s.manager.GenerateAccessToken(identity)
	if err != nil {
		return model.Session{}, fmt.Errorf("issue new access: %w", err)
	}

	refresh, newJTI, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.Session{}, fmt.Errorf("issue new refresh: %w", err)
	}

	rotatedFrom := rt.JTI
	if err := s.persist(ctx, userID, newJTI, refresh, &rotatedFrom); err != nil {
		return model.Session{}, fmt.Errorf("persist new refresh: %w", err)
	}

	return model.Session{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

// Identify resolves an access token into the caller identity.
func (s *TokenService) Identify(_ context.Context, token string) (model.Identity, error) {
	return s.manager.ParseAccessToken(token)
}

func (s *TokenService) persist(ctx context.Context, userID uuid.UUID, jti, refresh string, rotatedFrom *string) error {
	now := time.Now()
	return s.store.Create(ctx, model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if !equalBytes(rt.TokenHash, presentedHash) {
		return model.ErrTokenMismatch
	}
	return nil
}

func equalBytes(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
