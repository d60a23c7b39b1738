package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a staff account that complaints can be assigned to.
// Category is a complaint category, or a maintenance sub-category for
// maintenance staff.
type Member struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"index;not null" json:"category"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// MemberView is the projection of a member shown on timelines.
type MemberView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// View returns the public projection of m.
func (m *Member) View() *MemberView {
	if m == nil {
		return nil
	}
	return &MemberView{ID: m.ID, Name: m.Name, Category: m.Category, Phone: m.Phone, Email: m.Email}
}
