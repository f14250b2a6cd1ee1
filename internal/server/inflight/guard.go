// Package inflight rejects a second profile write for an owner while the
// first one is still running. Uploads to one key must not overlap, and the
// upload coordinator leaves that to its callers.
package inflight

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/profilesync/internal/common"
)

// Guard hands out per-key exclusive slots.
type Guard interface {
	// Acquire takes the slot for key or fails with common.ErrBusy.
	// The returned release must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// MemoryGuard is a Guard for a single server process.
type MemoryGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{held: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.held[key]; busy {
		return nil, common.ErrBusy
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
