// Package models defines the persisted entities and the application error
// taxonomy.
package models

import "time"

// User is a registered account. Email carries a store-level unique index;
// the password hash is never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"size:120;not null" json:"full_name"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:10;not null" json:"phone"`
	ProfilePhoto string    `json:"profile_photo"`
	Password     string    `gorm:"not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Posts        []Post    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
