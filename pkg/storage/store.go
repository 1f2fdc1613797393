package storage

import "context"

// FileStore persists raw artifact bytes and hands back an opaque file key.
// The key is what the session engine records; how bytes land on disk or in
// an object store is the implementation's business.
type FileStore interface {
	Save(ctx context.Context, category string, sessionId uint, ext string, data []byte) (string, error)
	Read(ctx context.Context, fileKey string) ([]byte, error)
}
