package models

import (
	"strings"
	"time"

	"minitrack/apperr"
)

type MiniatureType string

const (
	MiniatureTypeTroop     MiniatureType = "troop"
	MiniatureTypeCharacter MiniatureType = "character"
)

func (m MiniatureType) Valid() bool {
	return m == MiniatureTypeTroop || m == MiniatureTypeCharacter
}

// ProgressStatus is ordered for presentation only; any status may follow any
// other.
type ProgressStatus string

const (
	ProgressUnpainted  ProgressStatus = "unpainted"
	ProgressPrimed     ProgressStatus = "primed"
	ProgressBasecoated ProgressStatus = "basecoated"
	ProgressDetailed   ProgressStatus = "detailed"
	ProgressCompleted  ProgressStatus = "completed"
)

func (p ProgressStatus) Valid() bool {
	switch p {
	case ProgressUnpainted, ProgressPrimed, ProgressBasecoated, ProgressDetailed, ProgressCompleted:
		return true
	}
	return false
}

type Miniature struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	Project        Project        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	MiniatureType  MiniatureType  `gorm:"type:varchar(50);not null;check:chk_miniatures_miniature_type,miniature_type IN ('troop','character')" json:"miniature_type"`
	ProgressStatus ProgressStatus `gorm:"type:varchar(50);not null;check:chk_miniatures_progress_status,progress_status IN ('unpainted','primed','basecoated','detailed','completed')" json:"progress_status"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (m *Miniature) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return apperr.New(apperr.KindValidation, "Miniature name is required")
	}
	if len(m.Name) > 255 {
		return apperr.New(apperr.KindValidation, "Miniature name must be at most 255 characters")
	}
	if !m.MiniatureType.Valid() {
		return apperr.Newf(apperr.KindValidation, "Invalid miniature type %q", string(m.MiniatureType))
	}
	if !m.ProgressStatus.Valid() {
		return apperr.Newf(apperr.KindValidation, "Invalid progress status %q", string(m.ProgressStatus))
	}
	return nil
}
