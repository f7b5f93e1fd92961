package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential and profile record. SavedRecipes and CreatedRecipes
// are denormalized back-references to recipe ids, maintained by the recipe
// service as a best-effort secondary index. Both keep insertion order and set
// semantics at the application layer.
type User struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Username     string         `gorm:"size:50;not null" json:"username"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsPublisher  bool           `gorm:"not null;default:false" json:"isPublisher"`
	ProfilePic   string         `gorm:"size:255" json:"profile_pic"`
	Bio          string         `gorm:"type:text" json:"bio"`

	Preferences    StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"preferences"`
	SavedRecipes   StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"savedRecipes"`
	CreatedRecipes StringArray `gorm:"type:jsonb;not null;default:'[]'" json:"createdRecipes"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
