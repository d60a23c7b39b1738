package roster

import (
	"context"
	"log"
	"slices"
	"strings"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/storage"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByRollNumber(ctx context.Context, rollNumber string) (*models.User, error)
	ListStudents(ctx context.Context, filter storage.StudentFilter) ([]models.User, error)
	UpdateStudent(ctx context.Context, user *models.User) error
	DeleteStudent(ctx context.Context, id string) error
	CountUsersByRole(ctx context.Context, role string) (int64, error)
}

type MemberStore interface {
	CreateMember(ctx context.Context, member *models.Member) error
	ListMembers(ctx context.Context, category string) ([]models.Member, error)
	SetMemberActive(ctx context.Context, id string, active bool) error
}

type Service struct {
	Users   UserStore
	Members MemberStore
}

func NewService(users UserStore, members MemberStore) *Service {
	return &Service{Users: users, Members: members}
}

// AddStudent creates a student account with a generated password. The
// plain password is returned once and never stored.
func (s *Service) AddStudent(ctx context.Context, in StudentInput) (*models.User, string, error) {
	in, err := NormalizeStudent(in)
	if err != nil {
		return nil, "", err
	}
	user := &models.User{
		Name:         in.Name,
		RollNumber:   in.RollNumber,
		Role:         config.RoleStudent,
		Course:       in.Course,
		Year:         in.Year,
		Branch:       in.Branch,
		RoomNumber:   in.RoomNumber,
		StudentPhone: in.StudentPhone,
		ParentPhone:  in.ParentPhone,
	}
	password, err := s.create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("INFO: Student %s added (room %s)", user.RollNumber, user.RoomNumber)
	return user, password, nil
}

// AddAdmin creates an admin account with a generated password.
func (s *Service) AddAdmin(ctx context.Context, name, rollNumber string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	rollNumber = strings.ToUpper(strings.TrimSpace(rollNumber))
	if name == "" || rollNumber == "" {
		return nil, "", apperr.NewValidation("name and roll number are required")
	}
	user := &models.User{Name: name, RollNumber: rollNumber, Role: config.RoleAdmin}
	password, err := s.create(ctx, user)
	if err != nil {
		return nil, "", err
	}
	log.Printf("INFO: Admin %s added", user.RollNumber)
	return user, password, nil
}

func (s *Service) create(ctx context.Context, user *models.User) (string, error) {
	password, err := GeneratePassword()
	if err != nil {
		return "", err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	if err := s.Users.CreateUser(ctx, user); err != nil {
		return "", err
	}
	return password, nil
}

// Authenticate checks login credentials. Unknown roll numbers and wrong
// passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, rollNumber, password string) (*models.User, error) {
	user, err := s.Users.FindUserByRollNumber(ctx, rollNumber)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NewUnauthorized("invalid roll number or password")
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, apperr.NewUnauthorized("invalid roll number or password")
	}
	return user, nil
}

// ListStudents returns students newest first, narrowed by filter.
func (s *Service) ListStudents(ctx context.Context, filter storage.StudentFilter) ([]models.User, error) {
	filter.Course = strings.TrimSpace(filter.Course)
	filter.Branch = strings.TrimSpace(filter.Branch)
	filter.RoomNumber = strings.TrimSpace(filter.RoomNumber)
	return s.Users.ListStudents(ctx, filter)
}

// GetStudent returns the student with id. Admin accounts are reported as
// not found.
func (s *Service) GetStudent(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Users.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != config.RoleStudent {
		return nil, apperr.NewNotFound("student not found")
	}
	return user, nil
}

// UpdateStudent applies the non-empty fields of in to the student and
// revalidates the result. Roll number and year can't be edited.
func (s *Service) UpdateStudent(ctx context.Context, id string, in StudentUpdate) (*models.User, error) {
	in, err := NormalizeStudentUpdate(in)
	if err != nil {
		return nil, err
	}
	user, err := s.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(user)
	if err := ValidateStudent(user.Course, user.Branch, user.Year, user.RoomNumber); err != nil {
		return nil, err
	}
	if err := s.Users.UpdateStudent(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("INFO: Student %s updated", user.RollNumber)
	return user, nil
}

// DeleteStudent removes a student that has no complaints on record.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	if err := s.Users.DeleteStudent(ctx, id); err != nil {
		return err
	}
	log.Printf("INFO: Student %s deleted", id)
	return nil
}

func (s *Service) CountStudents(ctx context.Context) (int64, error) {
	return s.Users.CountUsersByRole(ctx, config.RoleStudent)
}

// BranchesForCourse lists the branches of course. The course name is
// matched case-insensitively.
func (s *Service) BranchesForCourse(course string) ([]string, error) {
	course = strings.TrimSpace(course)
	for name, branches := range config.CourseBranches {
		if strings.EqualFold(name, course) {
			return slices.Clone(branches), nil
		}
	}
	return nil, apperr.NewValidation(course + " is not a valid course")
}

func (s *Service) AddMember(ctx context.Context, in MemberInput) (*models.Member, error) {
	in, err := NormalizeMember(in)
	if err != nil {
		return nil, err
	}
	member := &models.Member{
		Name:     in.Name,
		Category: in.Category,
		Phone:    in.Phone,
		Email:    in.Email,
		IsActive: true,
	}
	if err := s.Members.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	log.Printf("INFO: Member %s added to %s", member.ID, member.Category)
	return member, nil
}

func (s *Service) ListMembers(ctx context.Context, category string) ([]models.Member, error) {
	return s.Members.ListMembers(ctx, strings.TrimSpace(category))
}

// SetMemberActive activates or deactivates a member. Deactivated members
// keep their existing assignments but cannot receive new ones.
func (s *Service) SetMemberActive(ctx context.Context, id string, active bool) error {
	if err := s.Members.SetMemberActive(ctx, id, active); err != nil {
		return err
	}
	log.Printf("INFO: Member %s active=%t", id, active)
	return nil
}
