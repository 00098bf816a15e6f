package announcement

import (
	"time"
)

// Announcement is a notice shown on the public landing page. End users only
// read; creation and editing go through the admin panel.
type Announcement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}
