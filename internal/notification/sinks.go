package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	"hostelcare/backend/internal/models"
)

// NotificationStore is the storage needed by StoreSink.
type NotificationStore interface {
	SaveNotification(ctx context.Context, n *models.Notification) error
	PublishNotification(ctx context.Context, n *models.Notification) error
}

// StoreSink persists the notification into the recipient's inbox and then
// publishes it for realtime push. A failed publish is logged only: the
// inbox row is the delivery.
type StoreSink struct {
	Store NotificationStore
}

func (s *StoreSink) Deliver(ctx context.Context, n *models.Notification) error {
	if err := s.Store.SaveNotification(ctx, n); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	if err := s.Store.PublishNotification(ctx, n); err != nil {
		log.Printf("WARN: Failed to publish notification %s for %s: %v", n.ID, n.RecipientID, err)
	}
	return nil
}

// MultiSink attempts every sink and joins their errors.
type MultiSink []Sink

func (m MultiSink) Deliver(ctx context.Context, n *models.Notification) error {
	var errs []error
	for _, s := range m {
		if err := s.Deliver(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
