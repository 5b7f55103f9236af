package testutil

import (
	"io"

	"github.com/dtroode/genoguard-server/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(0, io.Discard)
}
