// Package announcement publishes hostel announcements and notifies the
// roles they are addressed to.
package announcement

import (
	"context"
	"log"
	"slices"
	"strings"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/notification"
)

type Store interface {
	CreateAnnouncement(ctx context.Context, a *models.Announcement) error
	ListAnnouncements(ctx context.Context, activeOnly bool) ([]models.Announcement, error)
	DeactivateAnnouncement(ctx context.Context, id string) error
}

type UserDirectory interface {
	ListUsersByRole(ctx context.Context, roles ...string) ([]models.User, error)
}

type Notifier interface {
	Notify(ctx context.Context, kind string, recipients []string, p notification.Payload)
}

type MessageCatalog interface {
	Format(key string, args ...any) string
}

type CreateInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Audience    []string `json:"audience"`
}

type Service struct {
	Store    Store
	Users    UserDirectory
	Notifier Notifier
	Messages MessageCatalog
}

func NewService(store Store, users UserDirectory, notifier Notifier, messages MessageCatalog) *Service {
	return &Service{Store: store, Users: users, Notifier: notifier, Messages: messages}
}

// Create stores an announcement by an admin and notifies every user whose
// role is in the audience. An empty audience means students.
func (s *Service) Create(ctx context.Context, adminID string, in CreateInput) (*models.Announcement, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.NewValidation("title is required")
	}
	audience, err := normalizeAudience(in.Audience)
	if err != nil {
		return nil, err
	}

	a := &models.Announcement{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CreatedByID: adminID,
		IsActive:    true,
		Audience:    audience,
	}
	if err := s.Store.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}

	users, err := s.Users.ListUsersByRole(ctx, audience...)
	if err != nil {
		log.Printf("ERROR: Failed to resolve audience %v for announcement %s: %v", audience, a.ID, err)
		return a, nil
	}
	recipients := make([]string, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, u.ID)
	}
	s.Notifier.Notify(ctx, models.NotificationAnnouncement, recipients, notification.Payload{
		SenderID:    adminID,
		Title:       s.Messages.Format(notification.MsgAnnouncementTitle),
		Message:     a.Title,
		RelatedID:   a.ID,
		RelatedKind: models.RelatedAnnouncement,
	})
	return a, nil
}

func (s *Service) ListActive(ctx context.Context) ([]models.Announcement, error) {
	return s.Store.ListAnnouncements(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]models.Announcement, error) {
	return s.Store.ListAnnouncements(ctx, false)
}

// Delete hides an announcement; the row is kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Store.DeactivateAnnouncement(ctx, id)
}

func normalizeAudience(roles []string) ([]string, error) {
	if len(roles) == 0 {
		return []string{config.RoleStudent}, nil
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != config.RoleStudent && r != config.RoleAdmin {
			return nil, apperr.NewValidation("unknown audience role " + r)
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out, nil
}
