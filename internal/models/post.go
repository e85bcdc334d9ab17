package models

import "time"

// Post represents a feed entry owned by exactly one user. At most one of
// ImagePath/VideoPath is populated, decided by MIME sniffing of the upload.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:300" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImagePath string    `json:"image_path"`
	VideoPath string    `json:"video_path"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
