package notification

import (
	"fmt"

	"hostelcare/backend/internal/localization"
)

// Message keys in the localization catalog.
const (
	MsgComplaintNewTitle        = "complaint_new_title"
	MsgComplaintNewMessage      = "complaint_new_message"
	MsgComplaintStatusTitle     = "complaint_status_title"
	MsgComplaintStatusMessage   = "complaint_status_message"
	MsgComplaintReopenedTitle   = "complaint_reopened_title"
	MsgComplaintReopenedMessage = "complaint_reopened_message"
	MsgAnnouncementTitle        = "announcement_title"
)

// Catalog renders notification texts in one language.
type Catalog struct {
	Localizer *localization.Localizer
	Lang      string
}

// Format looks up key and applies args as fmt verbs.
func (c *Catalog) Format(key string, args ...any) string {
	text := c.Localizer.GetString(c.Lang, key)
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
