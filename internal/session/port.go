// Package session holds the storefront's client-local state: the shopping
// cart and the customer sign-in snapshot. Both stores keep their logic free
// of any storage backend by writing through an injected persistence Port.
package session

import (
	"context"
	"sync"

	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

// Port is the persistence boundary for session state. Load returns
// ErrNotFound (via pkg/errors) when nothing is stored under the key.
type Port interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Clear(ctx context.Context, key string) error
}

// MemoryPort is an in-process Port, used in tests and as the fallback when
// no Redis is configured.
type MemoryPort struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryPort creates an empty in-memory port.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{data: make(map[string][]byte)}
}

// Load returns the stored bytes for key.
func (p *MemoryPort) Load(ctx context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, ok := p.data[key]
	if !ok {
		return nil, apperrors.NotFound("session", key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores data under key.
func (p *MemoryPort) Save(ctx context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	p.data[key] = stored
	return nil
}

// Clear removes the entry for key.
func (p *MemoryPort) Clear(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key)
	return nil
}
