package storage

import (
	"context"
	"errors"
	"log"

	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"gorm.io/gorm"
)

func orderHistory(db *gorm.DB) *gorm.DB {
	return db.Order("seq asc")
}

// CreateComplaint inserts the complaint together with its StatusHistory rows.
func (s *Service) CreateComplaint(ctx context.Context, complaint *models.Complaint) error {
	if complaint.Version == 0 {
		complaint.Version = 1
	}
	if err := s.DB.WithContext(ctx).Create(complaint).Error; err != nil {
		log.Printf("ERROR: Failed to save complaint for student %s: %v", complaint.StudentID, err)
		return err
	}
	return nil
}

// GetComplaint loads a complaint with its ordered history and feedback.
func (s *Service) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	err := s.DB.WithContext(ctx).
		Preload("StatusHistory", orderHistory).
		Preload("Feedback").
		First(&complaint, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "complaint")
	}
	return &complaint, nil
}

// ListComplaints returns complaints newest first.
func (s *Service) ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, error) {
	var complaints []models.Complaint
	q := s.DB.WithContext(ctx).
		Preload("StatusHistory", orderHistory).
		Preload("Feedback").
		Order("created_at desc")
	if filter.StudentID != "" {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if err := q.Find(&complaints).Error; err != nil {
		log.Printf("ERROR: Failed to list complaints (student=%q): %v", filter.StudentID, err)
		return nil, err
	}
	return complaints, nil
}

// SaveComplaintState writes the mutable lifecycle fields of complaint, appends
// entry (when non-nil) and syncs the feedback row, all in one transaction.
//
// The update only applies while the stored version still equals
// expectedVersion; otherwise nothing is written and a Conflict error is
// returned. On success complaint.Version is advanced.
func (s *Service) SaveComplaintState(ctx context.Context, complaint *models.Complaint, expectedVersion int, entry *models.StatusHistoryEntry) error {
	nextVersion := expectedVersion + 1

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Complaint{}).
			Where("id = ? AND version = ?", complaint.ID, expectedVersion).
			Updates(map[string]interface{}{
				"current_status":        complaint.CurrentStatus,
				"assigned_to_id":        complaint.AssignedToID,
				"is_reopened":           complaint.IsReopened,
				"is_locked_for_updates": complaint.IsLockedForUpdates,
				"version":               nextVersion,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewConflict("complaint was modified concurrently, reload and retry", nil)
		}

		if entry != nil {
			entry.ComplaintID = complaint.ID
			if err := tx.Create(entry).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.NewConflict("status history position already taken", err)
				}
				return err
			}
		}

		if complaint.Feedback == nil {
			return tx.Where("complaint_id = ?", complaint.ID).Delete(&models.Feedback{}).Error
		}
		if complaint.Feedback.ID == "" {
			complaint.Feedback.ComplaintID = complaint.ID
			if err := tx.Create(complaint.Feedback).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.NewDuplicateFeedback("feedback already submitted for this complaint")
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !apperr.IsConflict(err) && !apperr.IsDuplicateFeedback(err) {
			log.Printf("ERROR: Failed to save complaint %s state: %v", complaint.ID, err)
		}
		return err
	}

	complaint.Version = nextVersion
	if entry != nil {
		complaint.StatusHistory = append(complaint.StatusHistory, *entry)
	}
	return nil
}
