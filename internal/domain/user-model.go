package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Name         string  `gorm:"not null" json:"name"`
	PasswordHash string  `json:"-"`
	Phone        *string `json:"phone,omitempty"`
	Status       string  `gorm:"type:varchar(20);not null;default:active" json:"status"`

	// Reset token pair: set together on issuance, cleared together on
	// consumption. The token is a lookup key, so it stays unique while set.
	ResetToken          *string    `gorm:"uniqueIndex" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`

	OnboardingCompletedAt *time.Time `json:"onboarding_completed_at,omitempty"`

	OwnerCredential *OwnerCredential `json:"-"`

	gorm.Model
}

// IsOwner reports whether the user is provisioned as an owner account.
// Existence of the credential record is the signal, not any password field.
func (u *User) IsOwner() bool {
	return u.OwnerCredential != nil && u.OwnerCredential.ID != 0
}
