package publish

import (
	"context"
	"fmt"
	"sync"
)

// MemoryProvider stores published payloads for inspection in tests.
type MemoryProvider struct {
	mu       sync.RWMutex
	payloads []any
}

// NewMemoryProvider returns an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// Publish records the payload and returns a pseudo ID.
func (p *MemoryProvider) Publish(_ context.Context, payload any) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return fmt.Sprintf("memory-%d", len(p.payloads)), nil
}

// Payloads returns a copy of the recorded publishes.
func (p *MemoryProvider) Payloads() []any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]any, len(p.payloads))
	copy(out, p.payloads)
	return out
}

// Close does nothing.
func (p *MemoryProvider) Close() error { return nil }
