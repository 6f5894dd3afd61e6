package storage

import (
	"strings"

	"minitrack/apperr"

	"github.com/google/uuid"
)

// BlobStore stores opaque binary content addressed by a storage key,
// independent of the database. Both backends honor the same contract:
// Put overwrites on retry with the same key, Delete of a missing key
// succeeds, and List feeds orphan reconciliation.
type BlobStore interface {
	// Put writes data under hint and returns the final storage key. An empty
	// hint gets a generated collision-resistant key.
	Put(hint string, data []byte, mimeType string) (string, error)
	Get(key string) ([]byte, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	List(prefix string) ([]string, error)
}

type Type string

const (
	TypeFile Type = "file"
	TypeS3   Type = "s3"
)

// Config selects and parameterizes the active backend. It is read once at
// process startup and treated as immutable for the process lifetime.
type Config struct {
	Type     Type
	Dir      string // file backend: root directory
	Bucket   string // s3 backend
	Region   string
	Endpoint string // optional, for S3-compatible stores
	Key      string
	Secret   string
}

func New(cfg Config) (BlobStore, error) {
	switch cfg.Type {
	case TypeFile:
		return NewDiskStore(cfg.Dir)
	case TypeS3:
		return NewS3Store(cfg)
	}
	return nil, apperr.Newf(apperr.KindValidation, "Unknown storage type %q, must be one of 'file' or 's3'", string(cfg.Type))
}

var mimeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func newKey(mimeType string) string {
	return uuid.NewString() + mimeExtensions[mimeType]
}

// validateKey rejects keys that could resolve outside the storage root:
// rooted paths, backslashes and any ".." segment are refused outright rather
// than normalized away.
func validateKey(key string) error {
	if key == "" {
		return apperr.New(apperr.KindValidation, "Storage key must not be empty")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return apperr.Newf(apperr.KindValidation, "Invalid storage key %q", key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return apperr.Newf(apperr.KindValidation, "Invalid storage key %q", key)
		}
	}
	return nil
}
