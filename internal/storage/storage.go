// Package storage holds the blob stores backing avatar uploads.
package storage

import "context"

type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
	Delete(ctx context.Context, key string) error
}
