package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity action tags.
const (
	ActionLogin            = "login"
	ActionCreateKey        = "create_key"
	ActionTranslate        = "translate"
	ActionApprove          = "approve"
	ActionDeleteKey        = "delete_key"
	ActionCreateAPIKey     = "create_api_key"
	ActionDeleteAPIKey     = "delete_api_key"
	ActionCreateLanguage   = "create_language"
	ActionUpdateLanguage   = "update_language"
	ActionDeleteLanguage   = "delete_language"
	ActionCreateUser       = "create_user"
	ActionUpdateUser       = "update_user"
	ActionUpdateRole       = "update_role"
	ActionToggleUserActive = "toggle_user_active"
	ActionDeleteUser       = "delete_user"
)

// ActivityLog is an immutable, append-only audit record of a state-changing
// action. The actor is nullable so system-initiated actions can be recorded
// too.
type ActivityLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Action    string     `gorm:"type:varchar(50);not null;index" json:"action"`
	Details   string     `gorm:"type:text" json:"details"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
