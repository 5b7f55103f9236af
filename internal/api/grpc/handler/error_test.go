package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "validation -> InvalidArgument",
			in:       model.NewValidationError("patientId", "Please enter a patient/sample ID"),
			wantCode: codes.InvalidArgument,
			wantMsg:  "Please enter a patient/sample ID",
		},
		{
			name:     "wrapped not found -> NotFound",
			in:       fmt.Errorf("failed to load sequence: %w", model.ErrNotFound),
			wantCode: codes.NotFound,
			wantMsg:  "record not found",
		},
		{
			name:     "email taken -> AlreadyExists",
			in:       model.ErrEmailTaken,
			wantCode: codes.AlreadyExists,
			wantMsg:  "an account with this email already exists",
		},
		{
			name:     "bad credentials -> Unauthenticated",
			in:       model.ErrInvalidCredentials,
			wantCode: codes.Unauthenticated,
			wantMsg:  "invalid email or password",
		},
		{
			name:     "revoked token -> Unauthenticated",
			in:       model.ErrTokenRevoked,
			wantCode: codes.Unauthenticated,
			wantMsg:  "session is no longer valid",
		},
		{
			name:     "canceled",
			in:       context.Canceled,
			wantCode: codes.Canceled,
			wantMsg:  "request canceled",
		},
		{
			name:     "other -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
