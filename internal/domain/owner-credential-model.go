package domain

import "gorm.io/gorm"

// OwnerCredential marks a user as an owner account. The password hash here
// is independent from User.PasswordHash and is only ever written, never
// compared, by the reset flow.
type OwnerCredential struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	PasswordHash string `gorm:"not null" json:"-"`
	gorm.Model
}
