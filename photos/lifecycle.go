// Package photos coordinates photo metadata rows and stored files. It is the
// only component that talks to both the entity store and the blob store, and
// it sequences operations so the narrower failure mode wins: an orphaned file
// is acceptable, a row pointing at a missing file is not.
package photos

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"minitrack/apperr"
	"minitrack/models"
	"minitrack/storage"
	"minitrack/store"

	"github.com/google/uuid"
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Manager struct {
	store   *store.Store
	blobs   storage.BlobStore
	maxSize int64
}

// NewManager wires the manager into the store's cascade hook, so deleting a
// miniature or project cleans up stored files through the same path as a
// direct photo delete.
func NewManager(st *store.Store, blobs storage.BlobStore, maxSize int64) *Manager {
	m := &Manager{store: st, blobs: blobs, maxSize: maxSize}
	st.BindBlobCleanup(m)
	return m
}

// Upload validates, writes the file, then commits the metadata row. The file
// goes first: a failed write aborts before any row exists. If the row commit
// fails afterwards, the just-written file is removed as best-effort
// compensation; a failed compensation is logged and left for reconciliation.
func (m *Manager) Upload(miniatureID uint64, filename string, data []byte, mimeType string) (*models.Photo, error) {
	if int64(len(data)) > m.maxSize {
		return nil, apperr.Newf(apperr.KindFileTooLarge,
			"File size %d bytes exceeds maximum allowed size of %d bytes", len(data), m.maxSize)
	}
	if len(data) == 0 {
		return nil, apperr.New(apperr.KindValidation, "Photo file is empty")
	}
	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, apperr.Newf(apperr.KindUnsupportedFormat,
			"Unsupported file type %q, allowed types: %s", mimeType, strings.Join(allowedMimeList(), ", "))
	}
	if _, err := m.store.GetMiniature(miniatureID); err != nil {
		return nil, err
	}

	key, err := m.blobs.Put(keyFor(miniatureID, filename, ext), data, mimeType)
	if err != nil {
		return nil, err
	}
	photo := &models.Photo{
		MiniatureID: miniatureID,
		Filename:    filename,
		StorageKey:  key,
		FileSize:    int64(len(data)),
		MimeType:    mimeType,
	}
	if err := m.store.CreatePhoto(photo); err != nil {
		if derr := m.blobs.Delete(key); derr != nil {
			log.Printf("Orphaned photo file %q left behind after failed upload: %v", key, derr)
		}
		return nil, err
	}
	return photo, nil
}

// Get returns the photo row together with the stored bytes.
func (m *Manager) Get(photoID uint64) (*models.Photo, []byte, error) {
	photo, err := m.store.GetPhoto(photoID)
	if err != nil {
		return nil, nil, err
	}
	data, err := m.blobs.Get(photo.StorageKey)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			log.Printf("Photo row %d references missing file %q", photo.ID, photo.StorageKey)
			return nil, nil, apperr.Wrap(apperr.KindConsistency, "Photo file is missing", err)
		}
		return nil, nil, err
	}
	return photo, data, nil
}

// Delete removes the stored file first and the row only after the file is
// confirmed gone (or already absent). A transient file failure keeps the row
// so the caller can retry; a row pointing at a removed file never outlives
// the call.
func (m *Manager) Delete(photoID uint64) error {
	photo, err := m.store.GetPhoto(photoID)
	if err != nil {
		return err
	}
	if err := m.RemoveBlob(photo); err != nil {
		return err
	}
	return m.store.DeletePhotoRow(photo.ID)
}

// RemoveBlob deletes the file behind a photo row. It implements
// store.BlobCleanup for cascading deletes. Absent files count as deleted.
func (m *Manager) RemoveBlob(photo *models.Photo) error {
	return m.blobs.Delete(photo.StorageKey)
}

// ReconcileOrphans deletes stored files no photo row references and returns
// how many were removed. Rows whose file is missing are only reported: they
// usually indicate a bug worth surfacing, not garbage to sweep.
func (m *Manager) ReconcileOrphans() (int, error) {
	keys, err := m.blobs.List("")
	if err != nil {
		return 0, err
	}
	referenced, err := m.store.PhotoStorageKeys()
	if err != nil {
		return 0, err
	}
	referencedSet := make(map[string]bool, len(referenced))
	for _, key := range referenced {
		referencedSet[key] = true
	}
	stored := make(map[string]bool, len(keys))
	removed := 0
	for _, key := range keys {
		stored[key] = true
		if referencedSet[key] {
			continue
		}
		if err := m.blobs.Delete(key); err != nil {
			return removed, err
		}
		log.Printf("Removed orphaned photo file %q", key)
		removed++
	}
	for _, key := range referenced {
		if !stored[key] {
			log.Printf("Consistency warning: photo row references missing file %q", key)
		}
	}
	return removed, nil
}

func keyFor(miniatureID uint64, filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return fmt.Sprintf("miniatures/%d/%s_%s%s", miniatureID, uuid.NewString(), sanitizeName(base), ext)
}

// sanitizeName keeps storage keys to a safe character set regardless of what
// the client named the file.
func sanitizeName(in string) string {
	var out strings.Builder
	for _, c := range in {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			c == '-' || c == '_' {

			out.WriteRune(c)
		} else {
			out.WriteString("_")
		}
	}
	if out.Len() == 0 {
		return "photo"
	}
	return out.String()
}

func allowedMimeList() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
}
