package store

import (
	"minitrack/apperr"
	"minitrack/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func (s *Store) CreateRecipe(recipe *models.PaintingRecipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	if err := s.db.Create(recipe).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

func (s *Store) GetRecipe(id uint64) (*models.PaintingRecipe, error) {
	var recipe models.PaintingRecipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		return nil, notFound("Recipe", id, err)
	}
	return &recipe, nil
}

func (s *Store) ListRecipes(miniatureType models.MiniatureType) ([]models.PaintingRecipe, error) {
	recipes := []models.PaintingRecipe{}
	tx := s.db.Order("name")
	if miniatureType != "" {
		if !miniatureType.Valid() {
			return nil, apperr.Newf(apperr.KindValidation, "Invalid miniature type %q", string(miniatureType))
		}
		tx = tx.Where("miniature_type = ?", miniatureType)
	}
	if err := tx.Find(&recipes).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return recipes, nil
}

type RecipeUpdate struct {
	Name       *string   `json:"name"`
	Steps      *[]string `json:"steps"`
	PaintsUsed *[]string `json:"paints_used"`
	Techniques *[]string `json:"techniques"`
	Notes      *string   `json:"notes"`
}

func (s *Store) UpdateRecipe(id uint64, update RecipeUpdate) (*models.PaintingRecipe, error) {
	recipe, err := s.GetRecipe(id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		recipe.Name = *update.Name
	}
	if update.Steps != nil {
		recipe.Steps = datatypes.NewJSONSlice(*update.Steps)
	}
	if update.PaintsUsed != nil {
		recipe.PaintsUsed = datatypes.NewJSONSlice(*update.PaintsUsed)
	}
	if update.Techniques != nil {
		recipe.Techniques = datatypes.NewJSONSlice(*update.Techniques)
	}
	if update.Notes != nil {
		recipe.Notes = update.Notes
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}
	if err := s.db.Save(recipe).Error; err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return recipe, nil
}

// DeleteRecipe removes the recipe and its miniature links. Linked miniatures
// are never deleted; callers can check RecipeUsageCount first to warn, but a
// non-zero usage does not block deletion.
func (s *Store) DeleteRecipe(id uint64) error {
	if _, err := s.GetRecipe(id); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.MiniatureRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PaintingRecipe{}, id).Error
	})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}
