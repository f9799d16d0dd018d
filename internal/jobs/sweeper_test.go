package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCompleter struct {
	n     int64
	err   error
	calls atomic.Int64
}

func (m *mockCompleter) CompletePastDue(ctx context.Context, now time.Time) (int64, error) {
	m.calls.Add(1)
	return m.n, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeperRunOnce(t *testing.T) {
	completer := &mockCompleter{n: 3}
	s := NewCompletionSweeper(completer, time.Minute, discardLogger())

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, int64(1), completer.calls.Load())
}

func TestSweeperRunOnce_Error(t *testing.T) {
	completer := &mockCompleter{err: errors.New("db unavailable")}
	s := NewCompletionSweeper(completer, time.Minute, discardLogger())

	_, err := s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestSweeperStartStop(t *testing.T) {
	completer := &mockCompleter{}
	s := NewCompletionSweeper(completer, 10*time.Millisecond, discardLogger())

	s.Start()
	// Idempotent: a second Start must not spawn a second loop.
	s.Start()

	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Greater(t, completer.calls.Load(), int64(0))
}
