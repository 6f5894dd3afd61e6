package store

import (
	"errors"

	"minitrack/apperr"
	"minitrack/models"

	"gorm.io/gorm"
)

// BlobCleanup removes the stored file behind a photo row. The photo lifecycle
// manager implements it; cascading deletes call it before any row is removed
// so a failed file delete aborts the cascade with every row intact.
type BlobCleanup interface {
	RemoveBlob(photo *models.Photo) error
}

// Store owns durable CRUD for all entities and the join table. It issues
// statements against the injected connection and never manages the pool
// lifecycle.
type Store struct {
	db      *gorm.DB
	cleanup BlobCleanup
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// BindBlobCleanup wires the photo lifecycle hook used by cascading deletes.
// Called once during startup, before any delete traffic.
func (s *Store) BindBlobCleanup(cleanup BlobCleanup) {
	s.cleanup = cleanup
}

func (s *Store) removeBlobs(photos []models.Photo) error {
	if s.cleanup == nil {
		return nil
	}
	for i := range photos {
		if err := s.cleanup.RemoveBlob(&photos[i]); err != nil {
			return err
		}
	}
	return nil
}

func notFound(what string, id uint64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Newf(apperr.KindNotFound, "%s with id %d not found", what, id)
	}
	return apperr.Wrap(apperr.KindInternal, "Database error", err)
}
