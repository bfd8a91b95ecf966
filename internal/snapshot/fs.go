package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSProvider writes snapshots under a local directory.
type FSProvider struct {
	root string
}

// NewFSProvider creates the root directory if needed.
func NewFSProvider(root string) (*FSProvider, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", root, err)
	}
	return &FSProvider{root: root}, nil
}

// Save writes the object to disk and returns its path.
func (p *FSProvider) Save(ctx context.Context, objectName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("save snapshot %s: %w", objectName, err)
	}
	target := filepath.Join(p.root, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return "", fmt.Errorf("create snapshot subdir for %s: %w", objectName, err)
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", objectName, err)
	}
	return target, nil
}

// Close does nothing; file handles are not held open.
func (p *FSProvider) Close() error { return nil }
