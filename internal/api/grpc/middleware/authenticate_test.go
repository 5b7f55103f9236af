package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/mocks"
	"github.com/dtroode/genoguard-server/internal/model"
	"github.com/dtroode/genoguard-server/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mdAuthHeader string
		identity     model.Identity
		tokenSvcErr  error
		wantErr      bool
	}{
		{
			name:         "missing authorization header",
			mdAuthHeader: "",
			wantErr:      true,
		},
		{
			name:         "invalid token",
			mdAuthHeader: "Bearer invalid",
			tokenSvcErr:  errors.New("token is malformed"),
			wantErr:      true,
		},
		{
			name:         "nil user id from token",
			mdAuthHeader: "Bearer token",
			identity:     model.Identity{},
			wantErr:      true,
		},
		{
			name:         "valid token",
			mdAuthHeader: "Bearer token",
			identity:     model.Identity{UserID: uuid.New(), Email: "doc@clinic.org"},
		},
		{
			name:         "demo token",
			mdAuthHeader: "Bearer demo",
			identity:     model.Identity{UserID: uuid.New(), Demo: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg := testutil.MakeNoopLogger()
			cm := mocks.NewContextManager(t)

			if !tt.wantErr {
				cm.On("SetIdentityToContext", mock.Anything, tt.identity).Return(context.Background())
			}

			svc := mocks.NewTokenService(t)
			if tt.mdAuthHeader != "" {
				svc.On("Identify", mock.Anything, mock.AnythingOfType("string")).Return(tt.identity, tt.tokenSvcErr)
			}
			m := NewAuthenticate(svc, cm, lg)

			ctx := context.Background()
			if tt.mdAuthHeader != "" {
				ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", tt.mdAuthHeader))
			}

			newCtx, err := m.AuthFunc(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				st, ok := status.FromError(err)
				assert.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Nil(t, newCtx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, newCtx)
			}
		})
	}
}
