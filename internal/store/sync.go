// Package store holds the client-side state containers: auth session, cart,
// and wishlist. In-memory state is the source of truth for rendering; local
// storage is a durable shadow written on every mutation; the backend is an
// eventually-consistent mirror updated by best-effort background calls.
package store

import (
	"context"
	"sync"
	"time"

	"monoshop/internal/observability"

	"golang.org/x/time/rate"
)

// SessionSource reports the current bearer token; an empty token means no
// session exists and remote mirroring is skipped
type SessionSource interface {
	Token() string
}

const syncTimeout = 10 * time.Second

// syncer runs fire-and-forget remote mirror calls. Failures are logged and
// swallowed: local state already changed and is never rolled back. Calls
// are rate limited so rapid UI actions don't burst the backend.
type syncer struct {
	wg      sync.WaitGroup
	limiter *rate.Limiter
}

func newSyncer() *syncer {
	return &syncer{
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// run launches fn on a background goroutine. The caller's context is not
// reused: the UI action that triggered the sync has already completed.
func (s *syncer) run(op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		if err := s.limiter.Wait(ctx); err != nil {
			observability.Warn("background sync skipped", "operation", op, "error", err.Error())
			return
		}
		if err := fn(ctx); err != nil {
			observability.Warn("background sync failed", "operation", op, "error", err.Error())
			return
		}
		observability.Debug("background sync completed", "operation", op)
	}()
}

// Wait blocks until all in-flight syncs finish. Used on shutdown and in
// tests; normal operation never waits.
func (s *syncer) Wait() {
	s.wg.Wait()
}
