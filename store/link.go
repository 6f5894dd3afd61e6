package store

import (
	"minitrack/apperr"
	"minitrack/models"

	"gorm.io/gorm/clause"
)

// LinkRecipe attaches a recipe to a miniature. Linking an already-linked pair
// is a no-op, not an error. The recipe's miniature_type hint is deliberately
// not checked against the miniature's type.
func (s *Store) LinkRecipe(miniatureID, recipeID uint64) error {
	if _, err := s.GetMiniature(miniatureID); err != nil {
		return err
	}
	if _, err := s.GetRecipe(recipeID); err != nil {
		return err
	}
	link := models.MiniatureRecipe{MiniatureID: miniatureID, RecipeID: recipeID}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

// UnlinkRecipe is idempotent; removing a link that does not exist succeeds.
func (s *Store) UnlinkRecipe(miniatureID, recipeID uint64) error {
	err := s.db.Where("miniature_id = ? AND recipe_id = ?", miniatureID, recipeID).
		Delete(&models.MiniatureRecipe{}).Error
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return nil
}

func (s *Store) RecipesFor(miniatureID uint64) ([]models.PaintingRecipe, error) {
	if _, err := s.GetMiniature(miniatureID); err != nil {
		return nil, err
	}
	recipes := []models.PaintingRecipe{}
	err := s.db.
		Joins("INNER JOIN miniature_recipes ON miniature_recipes.recipe_id = painting_recipes.id").
		Where("miniature_recipes.miniature_id = ?", miniatureID).
		Order("painting_recipes.name").
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return recipes, nil
}

// RecipeUsageCount reports how many distinct miniatures use a recipe. It is
// informational: a recipe in use can still be deleted.
func (s *Store) RecipeUsageCount(recipeID uint64) (int64, error) {
	if _, err := s.GetRecipe(recipeID); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.Model(&models.MiniatureRecipe{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "Database error", err)
	}
	return count, nil
}
