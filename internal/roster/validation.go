// Package roster manages the people the complaint service knows about:
// students and admins who log in, and staff members complaints are
// assigned to.
package roster

import (
	"slices"
	"strconv"
	"strings"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// servicecategory accepts a complaint category or a maintenance sub-category.
	_ = v.RegisterValidation("servicecategory", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return slices.Contains(config.ComplaintCategories, value) ||
			slices.Contains(config.MaintenanceSubCategories, value)
	})
	return v
}

// StudentInput is the manual add-student form.
type StudentInput struct {
	Name         string `json:"name" validate:"required"`
	RollNumber   string `json:"rollNumber" validate:"required,alphanum"`
	Course       string `json:"course" validate:"required"`
	Year         int    `json:"year" validate:"required,min=1"`
	Branch       string `json:"branch" validate:"required"`
	RoomNumber   string `json:"roomNumber" validate:"required,numeric"`
	StudentPhone string `json:"studentPhone" validate:"required,len=10,numeric"`
	ParentPhone  string `json:"parentPhone" validate:"required,len=10,numeric"`
}

// StudentUpdate is the edit-student form. Empty fields keep their value.
type StudentUpdate struct {
	Name         string `json:"name"`
	Course       string `json:"course"`
	Branch       string `json:"branch"`
	RoomNumber   string `json:"roomNumber" validate:"omitempty,numeric"`
	StudentPhone string `json:"studentPhone" validate:"omitempty,len=10,numeric"`
	ParentPhone  string `json:"parentPhone" validate:"omitempty,len=10,numeric"`
}

func (u StudentUpdate) apply(user *models.User) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&user.Name, u.Name)
	set(&user.Course, u.Course)
	set(&user.Branch, u.Branch)
	set(&user.RoomNumber, u.RoomNumber)
	set(&user.StudentPhone, u.StudentPhone)
	set(&user.ParentPhone, u.ParentPhone)
}

type MemberInput struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required,servicecategory"`
	Phone    string `json:"phone" validate:"omitempty,len=10,numeric"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ValidateStudent checks the course dependent fields of a student record:
// the branch must belong to the course, the year must lie within the
// course duration and the room must be a hostel room.
func ValidateStudent(course, branch string, year int, room string) error {
	branches, ok := config.CourseBranches[course]
	if !ok {
		return apperr.NewValidation(course + " is not a valid course")
	}
	if !slices.Contains(branches, branch) {
		return apperr.NewValidation(branch + " is not a valid branch for " + course)
	}
	if year < 1 || year > config.CourseMaxYear[course] {
		return apperr.NewValidation(strconv.Itoa(year) + " is not a valid year for " + course)
	}
	n, err := strconv.Atoi(strings.TrimSpace(room))
	if err != nil || n < config.MinRoomNumber || n > config.MaxRoomNumber {
		return apperr.NewValidation(room + " is not a valid room number")
	}
	return nil
}

// NormalizeStudent trims the form, upper-cases the roll number and
// validates it. Field errors are returned as validator.ValidationErrors.
func NormalizeStudent(in StudentInput) (StudentInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.RollNumber = strings.ToUpper(strings.TrimSpace(in.RollNumber))
	in.Course = strings.TrimSpace(in.Course)
	in.Branch = strings.TrimSpace(in.Branch)
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.StudentPhone = strings.TrimSpace(in.StudentPhone)
	in.ParentPhone = strings.TrimSpace(in.ParentPhone)

	if err := validate.Struct(in); err != nil {
		return in, err
	}
	if err := ValidateStudent(in.Course, in.Branch, in.Year, in.RoomNumber); err != nil {
		return in, err
	}
	return in, nil
}

func NormalizeStudentUpdate(in StudentUpdate) (StudentUpdate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Course = strings.TrimSpace(in.Course)
	in.Branch = strings.TrimSpace(in.Branch)
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	in.StudentPhone = strings.TrimSpace(in.StudentPhone)
	in.ParentPhone = strings.TrimSpace(in.ParentPhone)
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}

func NormalizeMember(in MemberInput) (MemberInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}
