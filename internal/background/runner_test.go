package background

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dtroode/genoguard-server/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunner_RunsTasks(t *testing.T) {
	r := NewRunner(testutil.MakeNoopLogger(), nil)

	var count atomic.Int32
	for range 5 {
		require.NoError(t, r.Go("count", func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	r.Wait()
	assert.Equal(t, int32(5), count.Load())
	require.NoError(t, r.Close(context.Background()))
}

func TestRunner_FailureHook(t *testing.T) {
	var (
		mu     sync.Mutex
		failed []string
	)
	r := NewRunner(testutil.MakeNoopLogger(), func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, name)
	})

	require.NoError(t, r.Go("ok", func(context.Context) error { return nil }))
	require.NoError(t, r.Go("mirror-upload", func(context.Context) error { return errors.New("unreachable") }))
	require.NoError(t, r.Go("panics", func(context.Context) error { panic("boom") }))

	r.Wait()
	mu.Lock()
	assert.ElementsMatch(t, []string{"mirror-upload", "panics"}, failed)
	mu.Unlock()
	require.NoError(t, r.Close(context.Background()))
}

func TestRunner_RejectsAfterClose(t *testing.T) {
	r := NewRunner(testutil.MakeNoopLogger(), nil)
	require.NoError(t, r.Close(context.Background()))

	err := r.Go("late", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestRunner_CloseTimeoutCancelsTasks(t *testing.T) {
	r := NewRunner(testutil.MakeNoopLogger(), nil)

	started := make(chan struct{})
	require.NoError(t, r.Go("slow", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}))
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
