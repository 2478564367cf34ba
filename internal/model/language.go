package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Language is a translation target. Exactly one language is usually flagged
// as the canonical source language, but that is a convention, not a
// constraint; only the code is unique.
type Language struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code          string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	IsSource      bool      `gorm:"not null;default:false" json:"is_source"`
	MinecraftHead *string   `gorm:"type:varchar(255)" json:"minecraft_head"` // decorative avatar, optional
}

func (l *Language) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
