package storage

import (
	"context"
	"errors"
	"log"
	"strings"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"gorm.io/gorm"
)

// CreateUser stores a new user; duplicate roll numbers are rejected.
func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	user.RollNumber = strings.ToUpper(strings.TrimSpace(user.RollNumber))
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.NewValidation("user with roll number " + user.RollNumber + " already exists")
		}
		log.Printf("ERROR: Failed to create user %s: %v", user.RollNumber, err)
		return err
	}
	return nil
}

func (s *Service) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

func (s *Service) FindUserByRollNumber(ctx context.Context, rollNumber string) (*models.User, error) {
	var user models.User
	roll := strings.ToUpper(strings.TrimSpace(rollNumber))
	if err := s.DB.WithContext(ctx).Where("roll_number = ?", roll).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// ListUsersByRole returns every user holding one of roles.
func (s *Service) ListUsersByRole(ctx context.Context, roles ...string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("role IN ?", roles).Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list users with roles %v: %v", roles, err)
		return nil, err
	}
	return users, nil
}

func (s *Service) FindUserByTelegramChat(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("telegram_chat_id = ?", chatID).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// UpdateUserTelegramChat links a Telegram chat to the user for notifications.
func (s *Service) UpdateUserTelegramChat(ctx context.Context, userID string, chatID int64) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("telegram_chat_id", chatID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("user not found")
	}
	return nil
}

func (s *Service) CreateMember(ctx context.Context, member *models.Member) error {
	return s.DB.WithContext(ctx).Create(member).Error
}

func (s *Service) FindMemberByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	if err := s.DB.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "member")
	}
	return &member, nil
}

// ListMembers returns members sorted by name, optionally restricted to one category.
func (s *Service) ListMembers(ctx context.Context, category string) ([]models.Member, error) {
	var members []models.Member
	q := s.DB.WithContext(ctx).Order("name asc")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *Service) SetMemberActive(ctx context.Context, id string, active bool) error {
	res := s.DB.WithContext(ctx).Model(&models.Member{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("member not found")
	}
	return nil
}

// ListStudents returns students newest first.
func (s *Service) ListStudents(ctx context.Context, filter StudentFilter) ([]models.User, error) {
	var users []models.User
	q := s.DB.WithContext(ctx).Where("role = ?", config.RoleStudent).Order("created_at desc")
	if filter.Course != "" {
		q = q.Where("course = ?", filter.Course)
	}
	if filter.Branch != "" {
		q = q.Where("branch = ?", filter.Branch)
	}
	if filter.RoomNumber != "" {
		q = q.Where("room_number = ?", filter.RoomNumber)
	}
	if err := q.Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list students %+v: %v", filter, err)
		return nil, err
	}
	return users, nil
}

// UpdateStudent writes the editable profile fields of user.
func (s *Service) UpdateStudent(ctx context.Context, user *models.User) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND role = ?", user.ID, config.RoleStudent).
		Updates(map[string]any{
			"name":          user.Name,
			"course":        user.Course,
			"branch":        user.Branch,
			"room_number":   user.RoomNumber,
			"student_phone": user.StudentPhone,
			"parent_phone":  user.ParentPhone,
		})
	if res.Error != nil {
		log.Printf("ERROR: Failed to update student %s: %v", user.ID, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NewNotFound("student not found")
	}
	return nil
}

// DeleteStudent removes a student account. Students who still have
// complaints on record are kept and a Conflict error is returned.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var complaints int64
		if err := tx.Model(&models.Complaint{}).Where("student_id = ?", id).Count(&complaints).Error; err != nil {
			return err
		}
		if complaints > 0 {
			return apperr.NewConflict("student still has complaints on record", nil)
		}
		res := tx.Where("id = ? AND role = ?", id, config.RoleStudent).Delete(&models.User{})
		if res.Error != nil {
			log.Printf("ERROR: Failed to delete student %s: %v", id, res.Error)
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NewNotFound("student not found")
		}
		return nil
	})
}

func (s *Service) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
