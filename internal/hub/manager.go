// Package hub pushes notifications to connected websocket clients.
//
// Notifications are published on Redis by whichever instance delivered them
// and every instance's ManagerService forwards them to the clients it holds
// for the recipient.
package hub

import (
	"context"
	"log"
	"sync"

	"hostelcare/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Subscriber opens the Redis subscription carrying published notifications.
type Subscriber interface {
	SubscribeNotifications(ctx context.Context) *redis.PubSub
}

type ManagerService struct {
	// Clients maps a user id to its open connections. Owned by Run.
	Clients map[string]map[Client]struct{}
	mu      sync.RWMutex

	RegisterCh   chan Client
	UnregisterCh chan Client
	DeliveryCh   chan models.Notification

	Subscriber Subscriber

	done chan struct{}
}

// NewManagerService creates a hub. sub may be nil, in which case only
// notifications sent to DeliveryCh are pushed.
func NewManagerService(sub Subscriber) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]map[Client]struct{}),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		DeliveryCh:   make(chan models.Notification, 64),
		Subscriber:   sub,
		done:         make(chan struct{}),
	}
}

// Run processes registrations and deliveries until ctx is cancelled.
func (m *ManagerService) Run(ctx context.Context) {
	defer close(m.done)

	if m.Subscriber != nil {
		m.StartPubSubListener(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case client := <-m.RegisterCh:
			m.register(client)
		case client := <-m.UnregisterCh:
			m.unregister(client)
		case n := <-m.DeliveryCh:
			m.deliver(n)
		}
	}
}

// Register hands client to the running hub. It returns false once the hub
// has stopped.
func (m *ManagerService) Register(client Client) bool {
	select {
	case m.RegisterCh <- client:
		return true
	case <-m.done:
		return false
	}
}

// Unregister removes client; safe to call after the hub stopped.
func (m *ManagerService) Unregister(client Client) {
	select {
	case m.UnregisterCh <- client:
	case <-m.done:
	}
}

// IsConnected reports whether userID has at least one open connection.
func (m *ManagerService) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Clients[userID]) > 0
}

func (m *ManagerService) register(client Client) {
	userID := client.GetUserID()
	m.mu.Lock()
	if m.Clients[userID] == nil {
		m.Clients[userID] = make(map[Client]struct{})
	}
	m.Clients[userID][client] = struct{}{}
	m.mu.Unlock()

	m.push(client, models.PushEvent{Type: models.PushConnected})
	log.Printf("INFO: Realtime client registered for user %s", userID)
}

func (m *ManagerService) unregister(client Client) {
	userID := client.GetUserID()
	m.mu.Lock()
	conns, ok := m.Clients[userID]
	if ok {
		if _, ok = conns[client]; ok {
			delete(conns, client)
			if len(conns) == 0 {
				delete(m.Clients, userID)
			}
		}
	}
	m.mu.Unlock()

	if ok {
		client.Close()
	}
}

func (m *ManagerService) deliver(n models.Notification) {
	m.mu.RLock()
	targets := make([]Client, 0, len(m.Clients[n.RecipientID]))
	for c := range m.Clients[n.RecipientID] {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	for _, c := range targets {
		m.push(c, models.PushEvent{Type: models.PushNotification, Notification: &n})
	}
}

// push never blocks the hub: a client whose buffer is full is dropped.
func (m *ManagerService) push(client Client, event models.PushEvent) {
	select {
	case client.GetSendChannel() <- event:
	default:
		log.Printf("WARN: Realtime client of %s is not keeping up, disconnecting", client.GetUserID())
		m.unregister(client)
	}
}

func (m *ManagerService) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, conns := range m.Clients {
		for c := range conns {
			c.Close()
		}
		delete(m.Clients, userID)
	}
}
