// Package publish sends run summaries to downstream consumers.
package publish

import "context"

// Provider publishes one payload and returns a message ID.
type Provider interface {
	Publish(ctx context.Context, payload any) (string, error)
	Close() error
}

// NoOpProvider drops payloads. Used when publishing is disabled.
type NoOpProvider struct{}

// Publish discards the payload.
func (NoOpProvider) Publish(_ context.Context, _ any) (string, error) {
	return "noop-message-id", nil
}

// Close does nothing.
func (NoOpProvider) Close() error { return nil }
