package complaint

import (
	"strings"

	"hostelcare/backend/internal/models"
)

// Statuses lists the lifecycle states in their natural order.
var Statuses = []string{
	models.StatusReceived,
	models.StatusInProgress,
	models.StatusResolved,
	models.StatusClosed,
}

// ParseStatus maps a client supplied status to its canonical value.
// "InProgress" is accepted as an alias of "In Progress".
func ParseStatus(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "InProgress" {
		return models.StatusInProgress, true
	}
	for _, status := range Statuses {
		if s == status {
			return status, true
		}
	}
	return "", false
}
