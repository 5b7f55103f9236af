package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/genoguard-server/internal/mocks"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/testutil"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	identity := model.Identity{UserID: uuid.New(), Email: "doc@example.com"}

	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewRefreshTokenStore(t)

	manager.On("GenerateAccessToken", identity).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", identity.UserID).Return("refresh", "jti-1", nil).Once()
	store.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		h := sha256.Sum256([]byte("refresh"))
		return rt.JTI == "jti-1" && rt.UserID == identity.UserID && string(rt.TokenHash) == string(h[:])
	})).Return(nil).Once()

	svc := NewTokenService(manager, store, servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	session, err := svc.Issue(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "access", session.AccessToken)
	assert.Equal(t, "refresh", session.RefreshToken)
	assert.False(t, session.Demo)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	ctx := context.Background()
	identity := model.Identity{UserID: uuid.New()}

	manager := servermocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", identity).Return("", assert.AnError).Once()

	svc := NewTokenService(manager, servermocks.NewRefreshTokenStore(t), servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	_, err := svc.Issue(ctx, identity)
	require.ErrorIs(t, err, assert.AnError)
}

func TestTokenService_IssueDemo(t *testing.T) {
	identity := model.Identity{UserID: uuid.New(), Demo: true}
	manager := servermocks.NewTokenManager(t)
	manager.On("GenerateAccessToken", identity).Return("demo-access", nil).Once()

	svc := NewTokenService(manager, servermocks.NewRefreshTokenStore(t), servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	session, err := svc.IssueDemo(identity)
	require.NoError(t, err)
	assert.True(t, session.Demo)
	assert.Empty(t, session.RefreshToken)
}

func TestTokenService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	jti := "jti-old"
	presented := "refresh-old"
	h := sha256.Sum256([]byte(presented))

	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewRefreshTokenStore(t)
	users := servermocks.NewUserStore(t)

	manager.On("ParseRefreshToken", presented).Return(userID, jti, nil).Once()
	store.On("GetByJTI", ctx, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: h[:],
		IssuedAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Email: "doc@example.com"}, nil).Once()
	store.On("RevokeByJTI", ctx, jti).Return(nil).Once()
	manager.On("GenerateAccessToken", model.Identity{UserID: userID, Email: "doc@example.com"}).Return("access-new", nil).Once()
	manager.On("GenerateRefreshToken", userID).Return("refresh-new", "jti-new", nil).Once()
	store.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.JTI == "jti-new" && rt.RotatedFromJTI != nil && *rt.RotatedFromJTI == jti
	})).Return(nil).Once()

	svc := NewTokenService(manager, store, users, testutil.MakeNoopLogger())

	session, err := svc.Refresh(ctx, presented)
	require.NoError(t, err)
	assert.Equal(t, "access-new", session.AccessToken)
	assert.Equal(t, "refresh-new", session.RefreshToken)
}

func TestTokenService_Refresh_AlreadyRotated(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "refresh-old"
	h := sha256.Sum256([]byte(presented))

	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewRefreshTokenStore(t)
	users := servermocks.NewUserStore(t)

	manager.On("ParseRefreshToken", presented).Return(userID, "jti-old", nil).Once()
	store.On("GetByJTI", ctx, "jti-old").Return(model.RefreshToken{
		JTI:       "jti-old",
		UserID:    userID,
		TokenHash: h[:],
		IssuedAt:  time.Now().Add(-time.Hour),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil).Once()
	users.On("GetByID", ctx, userID).Return(model.User{ID: userID, Email: "doc@example.com"}, nil).Once()
	store.On("RevokeByJTI", ctx, "jti-old").Return(model.ErrTokenRevoked).Once()

	svc := NewTokenService(manager, store, users, testutil.MakeNoopLogger())

	_, err := svc.Refresh(ctx, presented)
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}

func TestTokenService_Refresh_Rejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presented := "refresh"
	h := sha256.Sum256([]byte(presented))
	other := sha256.Sum256([]byte("other"))
	now := time.Now()

	tests := []struct {
		name   string
		stored model.RefreshToken
		want   error
	}{
		{
			name:   "revoked",
			stored: model.RefreshToken{TokenHash: h[:], ExpiresAt: now.Add(time.Hour), RevokedAt: &now},
			want:   model.ErrTokenRevoked,
		},
		{
			name:   "expired",
			stored: model.RefreshToken{TokenHash: h[:], ExpiresAt: now.Add(-time.Minute)},
			want:   model.ErrTokenExpired,
		},
		{
			name:   "hash mismatch",
			stored: model.RefreshToken{TokenHash: other[:], ExpiresAt: now.Add(time.Hour)},
			want:   model.ErrTokenMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := servermocks.NewTokenManager(t)
			store := servermocks.NewRefreshTokenStore(t)

			manager.On("ParseRefreshToken", presented).Return(userID, "jti", nil).Once()
			tt.stored.JTI = "jti"
			tt.stored.UserID = userID
			store.On("GetByJTI", ctx, "jti").Return(tt.stored, nil).Once()

			svc := NewTokenService(manager, store, servermocks.NewUserStore(t), testutil.MakeNoopLogger())

			_, err := svc.Refresh(ctx, presented)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTokenService_RevokeByToken(t *testing.T) {
	ctx := context.Background()
	manager := servermocks.NewTokenManager(t)
	store := servermocks.NewRefreshTokenStore(t)

	manager.On("ParseRefreshToken", "refresh").Return(uuid.New(), "jti", nil).Once()
	store.On("RevokeByJTI", ctx, "jti").Return(nil).Once()

	svc := NewTokenService(manager, store, servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	require.NoError(t, svc.RevokeByToken(ctx, "refresh"))
}

func TestTokenService_Identify(t *testing.T) {
	manager := servermocks.NewTokenManager(t)
	identity := model.Identity{UserID: uuid.New(), Demo: true}
	manager.On("ParseAccessToken", "access").Return(identity, nil).Once()

	svc := NewTokenService(manager, servermocks.NewRefreshTokenStore(t), servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	got, err := svc.Identify(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestTokenService_RevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := servermocks.NewRefreshTokenStore(t)
	store.On("RevokeAllByUser", ctx, userID).Return(nil).Once()

	svc := NewTokenService(servermocks.NewTokenManager(t), store, servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	require.NoError(t, svc.RevokeAllForUser(ctx, userID))
}

func TestTokenService_Refresh_MalformedToken(t *testing.T) {
	manager := servermocks.NewTokenManager(t)
	manager.On("ParseRefreshToken", "garbage").Return(uuid.Nil, "", errors.New("token is malformed")).Once()

	svc := NewTokenService(manager, servermocks.NewRefreshTokenStore(t), servermocks.NewUserStore(t), testutil.MakeNoopLogger())

	_, err := svc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrUnauthenticated)
}
