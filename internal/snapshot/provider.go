// Package snapshot persists raw crawl markdown so a run's input can be
// replayed or inspected after the fact.
package snapshot

import "context"

// Provider writes one snapshot object and returns its location.
type Provider interface {
	// Save stores data under objectName and returns the final URI/path.
	Save(ctx context.Context, objectName string, data []byte) (string, error)
	Close() error
}

// NoOpProvider discards snapshots. Used when snapshotting is disabled.
type NoOpProvider struct{}

// Save discards the data and returns an empty location.
func (NoOpProvider) Save(_ context.Context, _ string, _ []byte) (string, error) {
	return "", nil
}

// Close does nothing.
func (NoOpProvider) Close() error { return nil }
