package hub

import (
	"context"
	"encoding/json"
	"log"

	"hostelcare/backend/internal/models"
)

// StartPubSubListener forwards notifications published on Redis to
// DeliveryCh until ctx is cancelled.
func (m *ManagerService) StartPubSubListener(ctx context.Context) {
	pubsub := m.Subscriber.SubscribeNotifications(ctx)

	go func() {
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				n, err := decodeNotification(msg.Payload)
				if err != nil {
					log.Printf("ERROR: Failed to decode published notification: %v", err)
					continue
				}
				select {
				case m.DeliveryCh <- *n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
}

func decodeNotification(payload string) (*models.Notification, error) {
	var n models.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return nil, err
	}
	return &n, nil
}
