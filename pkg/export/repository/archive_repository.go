package repository

import "context"

// ArchiveRepository keeps a copy of every generated export.
type ArchiveRepository interface {
	// Put stores data under key and returns where it went.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Driver() string
}
