package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is a fixed-shape comment row on a post. Either Text or ImageURL
// must be present.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Text      string         `gorm:"type:text" json:"text"`
	ImageURL  string         `json:"image_url"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
