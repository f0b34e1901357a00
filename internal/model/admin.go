package model

import "time"

// Admin back-office operator account.
type Admin struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;size:255;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// RevokedToken a logged-out session token. Rows past ExpiresAt may be pruned.
type RevokedToken struct {
	ID        uint64    `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;size:512;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
