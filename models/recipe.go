package models

import (
	"strings"
	"time"

	"minitrack/apperr"

	"gorm.io/datatypes"
)

// PaintingRecipe is an independent entity; many miniatures may link to the
// same recipe. MiniatureType is a compatibility hint only and is never
// enforced against the miniatures a recipe gets linked to.
type PaintingRecipe struct {
	ID            uint64                      `gorm:"primaryKey" json:"id"`
	Name          string                      `gorm:"type:varchar(255);not null" json:"name"`
	MiniatureType MiniatureType               `gorm:"type:varchar(50);not null;check:chk_painting_recipes_miniature_type,miniature_type IN ('troop','character')" json:"miniature_type"`
	Steps         datatypes.JSONSlice[string] `json:"steps"`
	PaintsUsed    datatypes.JSONSlice[string] `json:"paints_used"`
	Techniques    datatypes.JSONSlice[string] `json:"techniques"`
	Notes         *string                     `json:"notes"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func (PaintingRecipe) TableName() string {
	return "painting_recipes"
}

func (r *PaintingRecipe) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperr.New(apperr.KindValidation, "Recipe name is required")
	}
	if len(r.Name) > 255 {
		return apperr.New(apperr.KindValidation, "Recipe name must be at most 255 characters")
	}
	if !r.MiniatureType.Valid() {
		return apperr.Newf(apperr.KindValidation, "Invalid miniature type %q", string(r.MiniatureType))
	}
	return nil
}
