package photos

import (
	"bytes"
	"path/filepath"
	"testing"

	"minitrack/apperr"
	"minitrack/models"
	"minitrack/storage"
	"minitrack/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testMaxSize = 1024 * 1024

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return store.New(db)
}

func newTestManager(t *testing.T) (*Manager, *store.Store, storage.BlobStore) {
	t.Helper()
	st := newTestStore(t)
	blobs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(st, blobs, testMaxSize), st, blobs
}

func testMiniature(t *testing.T, st *store.Store) *models.Miniature {
	t.Helper()
	project := &models.Project{
		Name:       "Ultramarines",
		GameSystem: models.GameSystemWarhammer40k,
		Army:       "Ultramarines",
	}
	require.NoError(t, st.CreateProject(project))
	miniature := &models.Miniature{
		ProjectID:     project.ID,
		Name:          "Captain",
		MiniatureType: models.MiniatureTypeCharacter,
	}
	require.NoError(t, st.CreateMiniature(miniature))
	return miniature
}

// failingDeleteStore simulates a blob backend whose deletes fail transiently.
type failingDeleteStore struct {
	storage.BlobStore
}

func (s *failingDeleteStore) Delete(key string) error {
	return apperr.New(apperr.KindStorageUnavailable, "Photo storage unavailable")
}

func TestUploadFetchDeleteScenario(t *testing.T) {
	mgr, st, blobs := newTestManager(t)
	miniature := testMiniature(t, st)

	payload := bytes.Repeat([]byte{0xAB}, 2048)
	photo, err := mgr.Upload(miniature.ID, "captain front.jpg", payload, "image/jpeg")
	require.NoError(t, err)
	assert.NotZero(t, photo.ID)
	assert.Equal(t, int64(len(payload)), photo.FileSize)
	assert.Equal(t, "image/jpeg", photo.MimeType)
	assert.NotEmpty(t, photo.StorageKey)

	got, data, err := mgr.Get(photo.ID)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, photo.ID, got.ID)

	// Cascading miniature delete removes row and file
	require.NoError(t, st.DeleteMiniature(miniature.ID))
	_, err = blobs.Get(photo.StorageKey)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = st.GetPhoto(photo.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	removed, err := mgr.ReconcileOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestUploadTooLargeHasNoSideEffects(t *testing.T) {
	mgr, st, _ := newTestManager(t)
	miniature := testMiniature(t, st)

	payload := make([]byte, testMaxSize+1)
	_, err := mgr.Upload(miniature.ID, "huge.jpg", payload, "image/jpeg")
	assert.True(t, apperr.IsKind(err, apperr.KindFileTooLarge))

	photos, err := st.ListPhotos(miniature.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	removed, err := mgr.ReconcileOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestUploadUnsupportedFormatHasNoSideEffects(t *testing.T) {
	mgr, st, _ := newTestManager(t)
	miniature := testMiniature(t, st)

	_, err := mgr.Upload(miniature.ID, "notes.txt", []byte("not an image"), "text/plain")
	assert.True(t, apperr.IsKind(err, apperr.KindUnsupportedFormat))

	photos, err := st.ListPhotos(miniature.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	removed, err := mgr.ReconcileOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestUploadUnknownMiniature(t *testing.T) {
	mgr, _, _ := newTestManager(t)
	_, err := mgr.Upload(9999, "a.jpg", []byte("x"), "image/jpeg")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteTwice(t *testing.T) {
	mgr, st, _ := newTestManager(t)
	miniature := testMiniature(t, st)
	photo, err := mgr.Upload(miniature.ID, "a.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(photo.ID))
	// Second delete reports the row as gone; callers may treat that as success
	err = mgr.Delete(photo.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteKeepsRowWhenBlobDeleteFails(t *testing.T) {
	st := newTestStore(t)
	disk, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	mgr := NewManager(st, &failingDeleteStore{BlobStore: disk}, testMaxSize)
	miniature := testMiniature(t, st)

	photo, err := mgr.Upload(miniature.ID, "a.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)

	err = mgr.Delete(photo.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindStorageUnavailable))

	// The row survives so the caller can retry
	_, err = st.GetPhoto(photo.ID)
	require.NoError(t, err)
}

func TestCascadeAbortsWhenBlobDeleteFails(t *testing.T) {
	st := newTestStore(t)
	disk, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	mgr := NewManager(st, &failingDeleteStore{BlobStore: disk}, testMaxSize)
	miniature := testMiniature(t, st)

	photo, err := mgr.Upload(miniature.ID, "a.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)

	err = st.DeleteMiniature(miniature.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindStorageUnavailable))

	// No partial cascade: miniature and photo row are both intact
	_, err = st.GetMiniature(miniature.ID)
	require.NoError(t, err)
	_, err = st.GetPhoto(photo.ID)
	require.NoError(t, err)
}

func TestProjectCascadeRemovesAllBlobs(t *testing.T) {
	mgr, st, blobs := newTestManager(t)

	project := &models.Project{
		Name:       "Ultramarines",
		GameSystem: models.GameSystemWarhammer40k,
		Army:       "Ultramarines",
	}
	require.NoError(t, st.CreateProject(project))

	keys := []string{}
	for i := 0; i < 2; i++ {
		miniature := &models.Miniature{
			ProjectID:     project.ID,
			Name:          "Troop",
			MiniatureType: models.MiniatureTypeTroop,
		}
		require.NoError(t, st.CreateMiniature(miniature))
		for j := 0; j < 3; j++ {
			photo, err := mgr.Upload(miniature.ID, "p.png", []byte{byte(i), byte(j)}, "image/png")
			require.NoError(t, err)
			keys = append(keys, photo.StorageKey)
		}
	}

	require.NoError(t, st.DeleteProject(project.ID))

	for _, key := range keys {
		exists, err := blobs.Exists(key)
		require.NoError(t, err)
		assert.False(t, exists)
	}
	removed, err := mgr.ReconcileOrphans()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestReconcileRemovesOnlyBlobOrphans(t *testing.T) {
	mgr, st, blobs := newTestManager(t)
	miniature := testMiniature(t, st)

	photo, err := mgr.Upload(miniature.ID, "keep.jpg", []byte("keep"), "image/jpeg")
	require.NoError(t, err)

	// A file nothing references
	_, err = blobs.Put("miniatures/999/stray.jpg", []byte("stray"), "image/jpeg")
	require.NoError(t, err)

	// A row whose file has gone missing
	ghost := &models.Photo{
		MiniatureID: miniature.ID,
		Filename:    "ghost.jpg",
		StorageKey:  "miniatures/1/ghost.jpg",
		FileSize:    4,
		MimeType:    "image/jpeg",
	}
	require.NoError(t, st.CreatePhoto(ghost))

	removed, err := mgr.ReconcileOrphans()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// The referenced file survives, the stray one is gone, the ghost row stays
	exists, err := blobs.Exists(photo.StorageKey)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = blobs.Exists("miniatures/999/stray.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = st.GetPhoto(ghost.ID)
	require.NoError(t, err)
}

func TestGetReportsMissingBlobAsConsistencyError(t *testing.T) {
	mgr, st, _ := newTestManager(t)
	miniature := testMiniature(t, st)

	ghost := &models.Photo{
		MiniatureID: miniature.ID,
		Filename:    "ghost.jpg",
		StorageKey:  "miniatures/1/ghost.jpg",
		FileSize:    4,
		MimeType:    "image/jpeg",
	}
	require.NoError(t, st.CreatePhoto(ghost))

	_, _, err := mgr.Get(ghost.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConsistency))
}
