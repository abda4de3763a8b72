package models

import (
	"time"
)

type Video struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:300;not null" json:"title"`
	Link         string    `gorm:"size:500;not null" json:"link"`
	CategoryID   *string   `gorm:"size:36;index" json:"category_id"`
	Category     *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;" json:"category,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
	Deleted      bool      `gorm:"not null;default:false;index" json:"-"` // Soft delete flag, rows are never removed
	AllowedUsers []User    `gorm:"many2many:video_user_association;" json:"allowed_users,omitempty"`
}

// TableName pins the table name shared with the SQL migrations.
func (Video) TableName() string {
	return "videos"
}
