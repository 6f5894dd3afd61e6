package store

import (
	"minitrack/apperr"
	"minitrack/models"

	"gorm.io/gorm"
)

func (s *Store) CreateMiniature(miniature *models.Miniature) error {
	if miniature.ProgressStatus == "" {
		miniature.ProgressStatus = models.ProgressUnpainted
	}
	if err := miniature.Validate(); err != nil {
		return err
	}
	if _, err := s.GetProject(miniature.ProjectID); err != nil {
		return err
	}
	if err := s.db.Create(miniature).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

func (s *Store) GetMiniature(id uint64) (*models.Miniature, error) {
	var miniature models.Miniature
	if err := s.db.First(&miniature, id).Error; err != nil {
		return nil, notFound("Miniature", id, err)
	}
	return &miniature, nil
}

func (s *Store) ListMiniatures(projectID uint64) ([]models.Miniature, error) {
	if _, err := s.GetProject(projectID); err != nil {
		return nil, err
	}
	miniatures := []models.Miniature{}
	if err := s.db.Where("project_id = ?", projectID).Order("id").Find(&miniatures).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return miniatures, nil
}

type MiniatureUpdate struct {
	Name           *string                `json:"name"`
	MiniatureType  *models.MiniatureType  `json:"miniature_type"`
	ProgressStatus *models.ProgressStatus `json:"progress_status"`
	Notes          *string                `json:"notes"`
}

func (s *Store) UpdateMiniature(id uint64, update MiniatureUpdate) (*models.Miniature, error) {
	miniature, err := s.GetMiniature(id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		miniature.Name = *update.Name
	}
	if update.MiniatureType != nil {
		miniature.MiniatureType = *update.MiniatureType
	}
	if update.ProgressStatus != nil {
		// Transitions are unconstrained, any status may follow any other
		miniature.ProgressStatus = *update.ProgressStatus
	}
	if update.Notes != nil {
		miniature.Notes = update.Notes
	}
	if err := miniature.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(miniature).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return miniature, nil
}

// DeleteMiniature removes the miniature, its photos and its recipe links.
// Photo files go first through the cleanup hook; a file failure leaves the
// miniature and all its rows intact for retry.
func (s *Store) DeleteMiniature(id uint64) error {
	if _, err := s.GetMiniature(id); err != nil {
		return err
	}
	var photos []models.Photo
	if err := s.db.Where("miniature_id = ?", id).Find(&photos).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	if err := s.removeBlobs(photos); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("miniature_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("miniature_id = ?", id).Delete(&models.MiniatureRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Miniature{}, id).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}
