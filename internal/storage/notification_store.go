package storage

import (
	"context"
	"encoding/json"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

func (s *Service) SaveNotification(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}

// PublishNotification publishes n on the Redis notification channel so the
// websocket hub can push it to connected clients.
func (s *Service) PublishNotification(ctx context.Context, n *models.Notification) error {
	if s.Redis == nil {
		return nil
	}
	msgBytes, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, config.NotificationChannel, string(msgBytes)).Err()
}

// SubscribeNotifications subscribes to the channel written by PublishNotification.
func (s *Service) SubscribeNotifications(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, config.NotificationChannel)
}

// ListNotifications returns the newest notifications of a recipient.
func (s *Service) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.DB.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc")
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Service) CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

// DeleteNotification removes one of the recipient's notifications.
func (s *Service) DeleteNotification(ctx context.Context, recipientID, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("notification not found")
	}
	return nil
}

func (s *Service) MarkAllNotificationsRead(ctx context.Context, recipientID string) error {
	return s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error
}

func (s *Service) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	return s.DB.WithContext(ctx).Create(a).Error
}

// ListAnnouncements returns announcements newest first.
func (s *Service) ListAnnouncements(ctx context.Context, activeOnly bool) ([]models.Announcement, error) {
	var announcements []models.Announcement
	q := s.DB.WithContext(ctx).Order("created_at desc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}

// DeactivateAnnouncement soft-deletes an announcement.
func (s *Service) DeactivateAnnouncement(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("announcement not found")
	}
	return nil
}
