package store

import (
	"minitrack/apperr"
	"minitrack/models"
)

// Photo rows are only ever written through the photo lifecycle manager, which
// keeps them consistent with the stored files. The methods here are the raw
// row operations it builds on.

func (s *Store) CreatePhoto(photo *models.Photo) error {
	if err := photo.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(photo).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

func (s *Store) GetPhoto(id uint64) (*models.Photo, error) {
	var photo models.Photo
	if err := s.db.First(&photo, id).Error; err != nil {
		return nil, notFound("Photo", id, err)
	}
	return &photo, nil
}

func (s *Store) ListPhotos(miniatureID uint64) ([]models.Photo, error) {
	if _, err := s.GetMiniature(miniatureID); err != nil {
		return nil, err
	}
	photos := []models.Photo{}
	if err := s.db.Where("miniature_id = ?", miniatureID).Order("uploaded_at").Find(&photos).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return photos, nil
}

func (s *Store) DeletePhotoRow(id uint64) error {
	result := s.db.Delete(&models.Photo{}, id)
	if result.Error != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.Newf(apperr.KindNotFound, "Photo with id %d not found", id)
	}
	return nil
}

// PhotoStorageKeys returns every storage key referenced by a photo row, used
// for orphan reconciliation.
func (s *Store) PhotoStorageKeys() ([]string, error) {
	keys := []string{}
	if err := s.db.Model(&models.Photo{}).Pluck("file_path", &keys).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return keys, nil
}
