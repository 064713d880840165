package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel is the database model for Account. The reset token lives
// inline on the row so redemption can clear it and replace the password
// hash in a single statement.
type AccountModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email            string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash     string     `gorm:"type:varchar(255);not null"`
	Role             string     `gorm:"type:varchar(50);not null;default:'client'"`
	ResetToken       *string    `gorm:"type:varchar(255);uniqueIndex"`
	ResetTokenExpiry *time.Time `gorm:"index"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

func (AccountModel) TableName() string {
	return "accounts"
}
