package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationToken backs email magic-link sign in. Only the sha256 of the
// token is stored; the plain token lives in the emailed link.
type VerificationToken struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Identifier string    `gorm:"type:varchar(255);index;not null"`
	TokenHash  string    `gorm:"column:token_hash;type:varchar(64);uniqueIndex;not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

func (v *VerificationToken) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// LoginEvent is one row of sign-in history, written by utils.LogLoginEvent.
type LoginEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	LoggedInAt time.Time `gorm:"not null"`
	IPAddress  string    `gorm:"type:varchar(64)"`
	UserAgent  string    `gorm:"type:text"`
	DeviceType string    `gorm:"type:varchar(20)"`
	Browser    string    `gorm:"type:varchar(50)"`
	OS         string    `gorm:"column:os;type:varchar(50)"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}
