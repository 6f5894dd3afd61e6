package store

import (
	"minitrack/apperr"
	"minitrack/models"

	"gorm.io/gorm"
)

func (s *Store) CreateProject(project *models.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(project).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

func (s *Store) GetProject(id uint64) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		return nil, notFound("Project", id, err)
	}
	return &project, nil
}

// ListProjects returns projects in insertion order, optionally filtered by
// game system.
func (s *Store) ListProjects(gameSystem models.GameSystem) ([]models.Project, error) {
	projects := []models.Project{}
	tx := s.db.Order("id")
	if gameSystem != "" {
		if !gameSystem.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "Invalid game system %q", string(gameSystem))
		}
		tx = tx.Where("game_system = ?", gameSystem)
	}
	if err := tx.Find(&projects).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return projects, nil
}

// ProjectUpdate carries the partial input for UpdateProject; only non-nil
// fields change.
type ProjectUpdate struct {
	Name        *string            `json:"name"`
	GameSystem  *models.GameSystem `json:"game_system"`
	Army        *string            `json:"army"`
	Description *string            `json:"description"`
}

func (s *Store) UpdateProject(id uint64, update ProjectUpdate) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		project.Name = *update.Name
	}
	if update.GameSystem != nil {
		project.GameSystem = *update.GameSystem
	}
	if update.Army != nil {
		project.Army = *update.Army
	}
	if update.Description != nil {
		project.Description = update.Description
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(project).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return project, nil
}

// DeleteProject removes the project, its miniatures, their photos and recipe
// links. Stored photo files are removed through the bound cleanup hook first;
// any file failure aborts the cascade before a single row is touched. The
// relational part then runs in one transaction, so the cascade is
// all-or-nothing.
func (s *Store) DeleteProject(id uint64) error {
	if _, err := s.GetProject(id); err != nil {
		return err
	}
	var miniatures []models.Miniature
	if err := s.db.Where("project_id = ?", id).Find(&miniatures).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	miniatureIDs := make([]uint64, 0, len(miniatures))
	for _, m := range miniatures {
		miniatureIDs = append(miniatureIDs, m.ID)
	}
	var photos []models.Photo
	if len(miniatureIDs) > 0 {
		if err := s.db.Where("miniature_id IN ?", miniatureIDs).Find(&photos).Error; err != nil {
			return apperr.Wrap(apperr.KindInternal, "Database error", err)
		}
	}
	if err := s.removeBlobs(photos); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(miniatureIDs) > 0 {
			if err := tx.Where("miniature_id IN ?", miniatureIDs).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
			if err := tx.Where("miniature_id IN ?", miniatureIDs).Delete(&models.MiniatureRecipe{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Miniature{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Project{}, id).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}
