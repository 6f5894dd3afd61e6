package models

import (
	"strings"
	"time"

	"minitrack/apperr"

	"gorm.io/gorm"
)

// Photo is the metadata row for a stored photo file. StorageKey is an opaque
// location understood only by the active storage backend; the column keeps
// its historical name `file_path` so existing data dumps load unchanged.
type Photo struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	MiniatureID uint64    `gorm:"not null;index" json:"miniature_id"`
	Miniature   Miniature `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Filename    string    `gorm:"type:varchar(255);not null" json:"filename"`
	StorageKey  string    `gorm:"column:file_path;type:varchar(500);not null" json:"file_path"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	MimeType    string    `gorm:"type:varchar(50);not null" json:"mime_type"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (p *Photo) Validate() error {
	if strings.TrimSpace(p.Filename) == "" {
		return apperr.New(apperr.KindValidation, "Photo filename is required")
	}
	if p.StorageKey == "" {
		return apperr.New(apperr.KindValidation, "Photo storage key is required")
	}
	if p.FileSize <= 0 {
		return apperr.New(apperr.KindValidation, "Photo file size must be positive")
	}
	if p.MimeType == "" {
		return apperr.New(apperr.KindValidation, "Photo MIME type is required")
	}
	return nil
}

// BeforeSave restricts the characters kept in Filename.
func (p *Photo) BeforeSave(tx *gorm.DB) (err error) {
	var name strings.Builder
	for i, c := range p.Filename {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
			(c == '.' && i > 0) || (c == '-') || (c == '_') {

			name.WriteRune(c)
		} else {
			// Replace all other characters with '_' (underscore)
			name.WriteString("_")
		}
	}
	p.Filename = name.String()
	return
}
