package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Translation status values. A (key, language) pair starts pending when the
// first value is written and becomes approved after review. There is no
// rejected state.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// TranslationKey is the unique string identifier a UI string hangs off of.
// The key string is immutable once created; deleting a key removes all of
// its translations with it.
type TranslationKey struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Key         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"key"`
	Description string     `gorm:"type:text" json:"description"`
	Context     string     `gorm:"type:text" json:"context"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	Creator     *User      `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (k *TranslationKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// Translation is the value of one (TranslationKey, Language) pair, unique
// per pair. Each write overwrites the previous value; there is no version
// history beyond updated_at and the activity log.
type Translation struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	KeyID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_translations_key_lang" json:"key_id"`
	TranslationKey *TranslationKey `gorm:"foreignKey:KeyID;constraint:OnDelete:CASCADE;" json:"-"`
	LanguageID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_translations_key_lang" json:"language_id"`
	Language       *Language       `gorm:"foreignKey:LanguageID;constraint:OnDelete:CASCADE;" json:"-"`
	Value          string          `gorm:"type:text;not null" json:"value"`
	Status         string          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TranslatedBy   *uuid.UUID      `gorm:"type:uuid" json:"translated_by"`
	Translator     *User           `gorm:"foreignKey:TranslatedBy" json:"-"`
	ReviewedBy     *uuid.UUID      `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer       *User           `gorm:"foreignKey:ReviewedBy" json:"-"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Translation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
