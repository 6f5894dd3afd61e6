package models

import "gorm.io/gorm"

// Migrate creates or updates the schema for all entities. Order matters:
// parents before children so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Project{},
		&Miniature{},
		&PaintingRecipe{},
		&MiniatureRecipe{},
		&Photo{},
	)
}
