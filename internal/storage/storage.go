package storage

import (
	"context"
	"fmt"
	"io"
)

// ImmutableCacheControl is stamped onto uploaded objects; keys are random,
// so an object never changes under its URL.
const ImmutableCacheControl = "public, max-age=31536000, immutable"

// Storage is the object-store adapter. Keys are opaque strings; PublicURL is
// pure string composition with the configured base.
type Storage interface {
	// Save stores an object under key with the given content type and
	// cache directive.
	Save(ctx context.Context, key string, reader io.Reader, contentType, cacheControl string) error

	// Get retrieves an object by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. A missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the public URL for a key.
	PublicURL(key string) string
}

// Config holds storage configuration.
type Config struct {
	Type      string // local, cloudflare_r2
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Bucket    string // for R2
	AccessKey string // for R2
	SecretKey string // for R2
	Endpoint  string // for R2
}

// NewStorage creates a storage instance based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
