package usecases

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	domainerrors "college-portal.backend/internal/domain/errors"
	"college-portal.backend/pkg/jwt"
)

// RefreshGate coalesces concurrent rotations of the same refresh token
// inside one process, so a client retrying in parallel gets the same new
// pair instead of tripping reuse detection. It must be started before use.
type RefreshGate struct {
	group    singleflight.Group
	mu       sync.RWMutex
	running  bool
	inflight sync.WaitGroup
}

// NewRefreshGate creates a stopped gate
func NewRefreshGate() *RefreshGate {
	return &RefreshGate{}
}

// Start opens the gate
func (g *RefreshGate) Start() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()
}

// Stop closes the gate and waits for in-flight rotations or ctx
func (g *RefreshGate) Stop(ctx context.Context) error {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	done := make(chan struct{})
	go func() {
		g.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs rotate once per token among concurrent callers. The second return
// value reports whether the result was shared with another caller.
func (g *RefreshGate) Do(token string, rotate func() (*jwt.TokenPair, error)) (*jwt.TokenPair, bool, error) {
	g.mu.RLock()
	if !g.running {
		g.mu.RUnlock()
		return nil, false, domainerrors.ErrUnavailable
	}
	g.inflight.Add(1)
	g.mu.RUnlock()
	defer g.inflight.Done()

	v, err, shared := g.group.Do(token, func() (interface{}, error) {
		return rotate()
	})
	if err != nil {
		return nil, shared, err
	}
	return v.(*jwt.TokenPair), shared, nil
}
