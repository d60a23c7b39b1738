package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationComplaint       = "complaint"
	NotificationComplaintStatus = "complaint_status"
	NotificationAnnouncement    = "announcement"
)

// Related entity kinds
const (
	RelatedComplaint    = "Complaint"
	RelatedAnnouncement = "Announcement"
)

// Notification is one delivered message in a user's inbox.
type Notification struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	RecipientID string    `gorm:"index;not null" json:"recipient"`
	SenderID    string    `json:"sender,omitempty"`
	Type        string    `gorm:"not null" json:"type"`
	Title       string    `json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	RelatedID   string    `gorm:"index" json:"relatedId,omitempty"`
	RelatedKind string    `json:"relatedKind,omitempty"`
	IsRead      bool      `gorm:"index;not null;default:false" json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}
