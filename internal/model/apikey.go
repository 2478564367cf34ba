package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApiKey is a bearer token scoped to an explicit permission subset. The
// grant is stored on the key itself and is deliberately independent of the
// owning user's role: changing the owner's role never changes what the key
// may do.
type ApiKey struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Key         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"key"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	Permissions string     `gorm:"type:text;not null" json:"-"` // JSON array of permission codes
	LastUsed    *time.Time `json:"last_used"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (k *ApiKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// GrantedPermissions decodes the stored permission grant. A malformed column
// yields an empty grant, never an error: a key that cannot be decoded can do
// nothing.
func (k *ApiKey) GrantedPermissions() []string {
	var perms []string
	if err := json.Unmarshal([]byte(k.Permissions), &perms); err != nil {
		return []string{}
	}
	return perms
}

// SetPermissions encodes perms into the stored grant column.
func (k *ApiKey) SetPermissions(perms []string) error {
	raw, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	k.Permissions = string(raw)
	return nil
}

// HasPermission reports whether the key's own grant contains code.
func (k *ApiKey) HasPermission(code string) bool {
	for _, p := range k.GrantedPermissions() {
		if p == code {
			return true
		}
	}
	return false
}
