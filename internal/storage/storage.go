// Package storage implements persistence on PostgreSQL (gorm) and realtime
// publication on Redis for every entity of the complaint service.
package storage

import (
	"context"
	"errors"

	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ComplaintFilter narrows ListComplaints. Zero value lists everything.
type ComplaintFilter struct {
	StudentID string
}

// StudentFilter narrows ListStudents; empty fields don't filter.
type StudentFilter struct {
	Course     string
	Branch     string
	RoomNumber string
}

type Storage interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByRollNumber(ctx context.Context, rollNumber string) (*models.User, error)
	ListUsersByRole(ctx context.Context, roles ...string) ([]models.User, error)
	FindUserByTelegramChat(ctx context.Context, chatID int64) (*models.User, error)
	UpdateUserTelegramChat(ctx context.Context, userID string, chatID int64) error
	ListStudents(ctx context.Context, filter StudentFilter) ([]models.User, error)
	UpdateStudent(ctx context.Context, user *models.User) error
	DeleteStudent(ctx context.Context, id string) error
	CountUsersByRole(ctx context.Context, role string) (int64, error)

	CreateMember(ctx context.Context, member *models.Member) error
	FindMemberByID(ctx context.Context, id string) (*models.Member, error)
	ListMembers(ctx context.Context, category string) ([]models.Member, error)
	SetMemberActive(ctx context.Context, id string, active bool) error

	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, error)
	SaveComplaintState(ctx context.Context, complaint *models.Complaint, expectedVersion int, entry *models.StatusHistoryEntry) error

	SaveNotification(ctx context.Context, n *models.Notification) error
	PublishNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error)
	DeleteNotification(ctx context.Context, recipientID, id string) error
	MarkAllNotificationsRead(ctx context.Context, recipientID string) error

	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]models.Announcement, error)
	DeactivateAnnouncement(ctx context.Context, id string) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

var _ Storage = (*Service)(nil)

// NewStorageService Constructor. rdb may be nil (admin CLI); publishing is
// then skipped.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// AutoMigrate creates or updates every table the service owns.
func (s *Service) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Complaint{},
		&models.StatusHistoryEntry{},
		&models.Feedback{},
		&models.Notification{},
		&models.Announcement{},
	)
}

// notFound converts gorm.ErrRecordNotFound into the typed NotFound error.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NewNotFound(what + " not found")
	}
	return err
}
