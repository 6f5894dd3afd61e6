package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"minitrack/apperr"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// DiskStore keeps blobs as files under a root directory that is writable by
// the current process. Storage keys are slash-separated paths relative to
// the root.
type DiskStore struct {
	root string
	dirs cmap.ConcurrentMap[string, bool]
}

func NewDiskStore(root string) (*DiskStore, error) {
	if root == "" {
		return nil, apperr.New(apperr.KindValidation, "Storage directory must be configured")
	}
	if err := os.MkdirAll(root, 0777); err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "Cannot create storage directory", err)
	}
	return &DiskStore{
		root: root,
		dirs: cmap.New[bool](),
	}, nil
}

func (s *DiskStore) fullPath(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *DiskStore) ensureDir(dir string) error {
	if ok, _ := s.dirs.Get(dir); ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	s.dirs.Set(dir, true)
	return nil
}

func (s *DiskStore) Put(hint string, data []byte, mimeType string) (string, error) {
	key := hint
	if key == "" {
		key = newKey(mimeType)
	}
	if err := validateKey(key); err != nil {
		return "", err
	}
	fileName := s.fullPath(key)
	if err := s.ensureDir(filepath.Dir(fileName)); err != nil {
		return "", apperr.Wrap(apperr.KindStorageUnavailable, "Cannot store photo file", err)
	}
	// os.WriteFile truncates, so retrying the same key overwrites
	if err := os.WriteFile(fileName, data, 0666); err != nil {
		return "", apperr.Wrap(apperr.KindStorageUnavailable, "Cannot store photo file", err)
	}
	return key, nil
}

func (s *DiskStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.fullPath(key))
	if os.IsNotExist(err) {
		return nil, apperr.Newf(apperr.KindNotFound, "Photo file %q not found", key)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "Cannot read photo file", err)
	}
	return data, nil
}

func (s *DiskStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.fullPath(key))
	if err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindStorageUnavailable, "Cannot delete photo file", err)
	}
	return nil
}

func (s *DiskStore) Exists(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	_, err := os.Stat(s.fullPath(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Wrap(apperr.KindStorageUnavailable, "Cannot stat photo file", err)
	}
	return true, nil
}

func (s *DiskStore) List(prefix string) ([]string, error) {
	keys := []string{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStorageUnavailable, "Cannot list photo files", err)
	}
	return keys, nil
}
