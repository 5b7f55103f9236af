package middleware

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/genoguard-server/internal/logger"
)

func TestRecovery_HandlePanic(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecovery(logger.NewWithWriter(0, &buf))

	err := r.HandlePanic("nil map write")

	st, ok := status.FromError(err)
	assert.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Contains(t, buf.String(), "nil map write")
}
