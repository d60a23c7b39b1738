package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a resident (student) or an administrator.
// Students carry their academic and hostel details; admins only need a name
// and login credentials.
type User struct {
	ID                string `gorm:"primaryKey" json:"id"`
	Name              string `gorm:"not null" json:"name"`
	RollNumber        string `gorm:"uniqueIndex;not null" json:"rollNumber"`
	PasswordHash      string `gorm:"not null" json:"-"`
	Role              string `gorm:"index;not null" json:"role"`
	Course            string `json:"course,omitempty"`
	Year              int    `json:"year,omitempty"`
	Branch            string `json:"branch,omitempty"`
	RoomNumber        string `gorm:"index" json:"roomNumber,omitempty"`
	StudentPhone      string `json:"studentPhone,omitempty"`
	ParentPhone       string `json:"parentPhone,omitempty"`
	IsPasswordChanged bool   `json:"isPasswordChanged"`
	// TelegramChatID links the user to the Telegram notification sink. Zero means not linked.
	TelegramChatID int64     `gorm:"index" json:"-"`
	Language       string    `json:"language,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BeforeCreate generates a UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserView is the public projection of a user used when enriching timelines.
type UserView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// View returns the public projection of u.
func (u *User) View() *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Name: u.Name, Role: u.Role}
}

// StudentView is the reporting student as shown on a complaint.
type StudentView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"rollNumber"`
}

// StudentView returns the complaint-facing projection of u.
func (u *User) StudentView() *StudentView {
	if u == nil {
		return nil
	}
	return &StudentView{ID: u.ID, Name: u.Name, RollNumber: u.RollNumber}
}
