package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/stockkeeper/internal/server/events"
	"github.com/iudanet/stockkeeper/internal/server/session"
	"github.com/iudanet/stockkeeper/internal/server/storage/sqlstore"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestStorage(t *testing.T) *sqlstore.Storage {
	t.Helper()

	s, err := sqlstore.New(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestSessions() *session.Manager {
	return session.NewManager(session.Config{Secret: []byte("test-secret"), TTL: time.Hour})
}

// recordingPublisher запоминает опубликованные события
type recordingPublisher struct {
	err    error
	events []events.Event
	mu     sync.Mutex
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

const testCost = bcrypt.MinCost
