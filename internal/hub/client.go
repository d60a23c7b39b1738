package hub

import "hostelcare/backend/internal/models"

// Client is one realtime connection of a user. A user may hold several
// (one per open tab or device).
type Client interface {
	// GetUserID returns the user the connection was authenticated as.
	GetUserID() string
	// GetSendChannel returns the channel the manager pushes events into.
	GetSendChannel() chan<- models.PushEvent
	// Run starts the connection's read and write pumps.
	Run()
	// Close stops the write pump and closes the connection.
	Close()
}
