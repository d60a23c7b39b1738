package complaint

import (
	"context"
	"iter"
	"slices"
	"time"

	"hostelcare/backend/internal/config"
	"hostelcare/backend/internal/models"
)

// TimelineEntry is one history entry with its references resolved.
type TimelineEntry struct {
	Status     string             `json:"status"`
	Note       string             `json:"note"`
	Timestamp  time.Time          `json:"timestamp"`
	AssignedTo *models.MemberView `json:"assignedTo"`
	UpdatedBy  *models.UserView   `json:"updatedBy"`
}

// TimelineBuilder replays a complaint's status history for display.
type TimelineBuilder struct {
	Users   UserDirectory
	Members MemberDirectory
}

// Build returns the complaint's history ordered by timestamp. References
// are resolved lazily while iterating; a reference that cannot be resolved
// is left nil. A complaint without history yields one entry built from its
// current status and creation time.
func (b *TimelineBuilder) Build(ctx context.Context, c *models.Complaint) iter.Seq[TimelineEntry] {
	history := slices.Clone(c.StatusHistory)
	slices.SortStableFunc(history, func(x, y models.StatusHistoryEntry) int {
		return x.Timestamp.Compare(y.Timestamp)
	})

	return func(yield func(TimelineEntry) bool) {
		if len(history) == 0 {
			yield(TimelineEntry{
				Status:    c.CurrentStatus,
				Note:      config.CreatedNote,
				Timestamp: c.CreatedAt,
			})
			return
		}

		refs := newResolver(b.Users, b.Members)
		for _, h := range history {
			entry := TimelineEntry{
				Status:    h.Status,
				Note:      h.Note,
				Timestamp: h.Timestamp,
			}
			if h.AssignedToID != nil {
				entry.AssignedTo = refs.member(ctx, *h.AssignedToID).View()
			}
			if h.UpdatedByID != nil {
				entry.UpdatedBy = refs.user(ctx, *h.UpdatedByID).View()
			}
			if !yield(entry) {
				return
			}
		}
	}
}
