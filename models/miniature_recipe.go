package models

// MiniatureRecipe joins miniatures and painting recipes. The composite
// primary key keeps each (miniature, recipe) pair unique; deleting either
// side removes the link rows, never the entities.
type MiniatureRecipe struct {
	MiniatureID uint64         `gorm:"primaryKey;autoIncrement:false" json:"miniature_id"`
	RecipeID    uint64         `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Miniature   Miniature      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Recipe      PaintingRecipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (MiniatureRecipe) TableName() string {
	return "miniature_recipes"
}
