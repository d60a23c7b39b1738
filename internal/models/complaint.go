package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint status values as transmitted to clients.
const (
	StatusReceived   = "Received"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusClosed     = "Closed"
)

// Complaint is a resident-reported issue tracked through its lifecycle.
//
// StudentID, Category, SubCategory, Description and CreatedAt never change
// after creation. CurrentStatus, AssignedToID, Feedback, IsReopened and
// IsLockedForUpdates are changed only by the lifecycle service, and every
// such change bumps Version.
type Complaint struct {
	ID          string `gorm:"primaryKey" json:"id"`
	StudentID   string `gorm:"index;not null" json:"studentId"`
	Category    string `gorm:"index;not null" json:"category"`
	SubCategory string `json:"subCategory,omitempty"`
	Description string `gorm:"type:text;not null" json:"description"`

	CurrentStatus string  `gorm:"index;not null" json:"currentStatus"`
	AssignedToID  *string `gorm:"index" json:"assignedTo"`

	// StatusHistory is ordered by Seq and only ever appended to.
	StatusHistory []StatusHistoryEntry `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"statusHistory"`
	Feedback      *Feedback            `gorm:"foreignKey:ComplaintID;constraint:OnDelete:CASCADE" json:"feedback"`

	IsReopened         bool `gorm:"not null;default:false" json:"isReopened"`
	IsLockedForUpdates bool `gorm:"not null;default:false" json:"isLockedForUpdates"`

	// Version guards read-modify-write updates.
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// LastHistoryEntry returns the most recent history entry, or nil when the
// history is empty.
func (c *Complaint) LastHistoryEntry() *StatusHistoryEntry {
	if len(c.StatusHistory) == 0 {
		return nil
	}
	return &c.StatusHistory[len(c.StatusHistory)-1]
}

// StatusHistoryEntry is one row of a complaint's audit log.
type StatusHistoryEntry struct {
	ID          string `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"uniqueIndex:idx_history_seq;not null" json:"-"`
	// Seq is the 1-based position in the log.
	Seq          int       `gorm:"uniqueIndex:idx_history_seq;not null" json:"seq"`
	Status       string    `gorm:"not null" json:"status"`
	Note         string    `gorm:"type:text" json:"note"`
	AssignedToID *string   `json:"assignedTo"`
	UpdatedByID  *string   `json:"updatedBy"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}

func (StatusHistoryEntry) TableName() string {
	return "complaint_status_history"
}

func (h *StatusHistoryEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}

// Feedback is the resident's verdict on a resolved complaint.
// The unique index on ComplaintID makes it write-once per resolution.
type Feedback struct {
	ID          string    `gorm:"primaryKey" json:"-"`
	ComplaintID string    `gorm:"uniqueIndex;not null" json:"-"`
	IsSatisfied bool      `gorm:"not null" json:"isSatisfied"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
}

func (Feedback) TableName() string {
	return "complaint_feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}
