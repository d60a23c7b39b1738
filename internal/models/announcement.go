package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // pq.StringArray for the audience roles
	"gorm.io/gorm"
)

// Announcement is a broadcast from the hostel administration.
type Announcement struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedByID string `gorm:"index" json:"createdBy"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`
	// Audience lists the user roles that get notified.
	Audience  pq.StringArray `gorm:"type:text[]" json:"audience"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
