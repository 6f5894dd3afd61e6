package models

import (
	"strings"
	"time"

	"minitrack/apperr"
)

// GameSystem values are stored snake_case to stay compatible with existing
// data dumps.
type GameSystem string

const (
	GameSystemAgeOfSigmar  GameSystem = "age_of_sigmar"
	GameSystemHorusHeresy  GameSystem = "horus_heresy"
	GameSystemWarhammer40k GameSystem = "warhammer_40k"
)

func (g GameSystem) Valid() bool {
	switch g {
	case GameSystemAgeOfSigmar, GameSystemHorusHeresy, GameSystemWarhammer40k:
		return true
	}
	return false
}

type Project struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	GameSystem  GameSystem `gorm:"type:varchar(50);not null;check:chk_projects_game_system,game_system IN ('age_of_sigmar','horus_heresy','warhammer_40k')" json:"game_system"`
	Army        string     `gorm:"type:varchar(255);not null" json:"army"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (p *Project) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Army = strings.TrimSpace(p.Army)
	if p.Name == "" {
		return apperr.New(apperr.KindValidation, "Project name is required")
	}
	if len(p.Name) > 255 {
		return apperr.New(apperr.KindValidation, "Project name must be at most 255 characters")
	}
	if !p.GameSystem.Valid() {
		return apperr.Newf(apperr.KindValidation, "Invalid game system %q", string(p.GameSystem))
	}
	if p.Army == "" {
		return apperr.New(apperr.KindValidation, "Army is required")
	}
	if len(p.Army) > 255 {
		return apperr.New(apperr.KindValidation, "Army must be at most 255 characters")
	}
	return nil
}
