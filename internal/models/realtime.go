package models

// Push event types sent over the websocket.
const (
	PushNotification = "notification"
	PushConnected    = "connected"
)

// PushEvent is the envelope written to websocket clients.
type PushEvent struct {
	Type         string        `json:"type"`
	Notification *Notification `json:"notification,omitempty"`
}
