package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStorage opens a private in-memory database holding the user,
// member and complaint tables.
func newTestStorage(t *testing.T) *Service {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Complaint{},
		&models.StatusHistoryEntry{},
		&models.Feedback{},
	))
	return NewStorageService(db, nil)
}

func seedComplaint(t *testing.T, s *Service, studentID string) *models.Complaint {
	t.Helper()
	c := &models.Complaint{
		StudentID:     studentID,
		Category:      "Food",
		Description:   "rice undercooked",
		CurrentStatus: models.StatusReceived,
		StatusHistory: []models.StatusHistoryEntry{{
			Seq:         1,
			Status:      models.StatusReceived,
			Note:        config.CreatedNote,
			UpdatedByID: &studentID,
			Timestamp:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		}},
	}
	require.NoError(t, s.CreateComplaint(context.Background(), c))
	return c
}

func historyEntry(seq int, status string) *models.StatusHistoryEntry {
	return &models.StatusHistoryEntry{
		Seq:       seq,
		Status:    status,
		Timestamp: time.Date(2024, 3, 1, 9, seq, 0, 0, time.UTC),
	}
}

func TestSaveComplaintState_AppliesAndBumpsVersion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := seedComplaint(t, s, "stu1")
	assert.Equal(t, 1, created.Version)

	c, err := s.GetComplaint(ctx, created.ID)
	require.NoError(t, err)
	member := "m1"
	c.CurrentStatus = models.StatusInProgress
	c.AssignedToID = &member
	require.NoError(t, s.SaveComplaintState(ctx, c, 1, historyEntry(2, models.StatusInProgress)))
	assert.Equal(t, 2, c.Version)
	assert.Len(t, c.StatusHistory, 2)

	stored, err := s.GetComplaint(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)
	assert.Equal(t, models.StatusInProgress, stored.CurrentStatus)
	require.NotNil(t, stored.AssignedToID)
	assert.Equal(t, "m1", *stored.AssignedToID)
	require.Len(t, stored.StatusHistory, 2)
	assert.Equal(t, []int{1, 2}, []int{stored.StatusHistory[0].Seq, stored.StatusHistory[1].Seq})
}

func TestSaveComplaintState_StaleVersionWritesNothing(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	created := seedComplaint(t, s, "stu1")

	first, err := s.GetComplaint(ctx, created.ID)
	require.NoError(t, err)
	stale, err := s.GetComplaint(ctx, created.ID)
	require.NoError(t, err)

	first.CurrentStatus = models.StatusInProgress
	require.NoError(t, s.SaveComplaintState(ctx, first, first.Version, historyEntry(2, models.StatusInProgress)))

	stale.CurrentStatus = models.StatusResolved
	stale.Feedback = &models.Feedback{IsSatisfied: true, Timestamp: time.Now()}
	err = s.SaveComplaintState(ctx, stale, stale.Version, historyEntry(2, models.StatusResolved))
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, 1, stale.Version, "version is only advanced on success")
	assert.Len(t, stale.StatusHistory, 1)

	stored, err := s.GetComplaint(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, stored.CurrentStatus)
	assert.Equal(t, 2, stored.Version)
	assert.Len(t, stored.StatusHistory, 2)
	assert.Nil(t, stored.Feedback)

	err = s.SaveComplaintState(ctx, &models.Complaint{ID: "missing"}, 1, nil)
	assert.True(t, apperr.IsConflict(err), "unknown ids match no row either")
}

func TestSaveComplaintState_SyncsFeedback(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	c := seedComplaint(t, s, "stu1")

	countFeedback := func() int64 {
		var n int64
		require.NoError(t, s.DB.Model(&models.Feedback{}).Where("complaint_id = ?", c.ID).Count(&n).Error)
		return n
	}

	c.CurrentStatus = models.StatusResolved
	require.NoError(t, s.SaveComplaintState(ctx, c, c.Version, historyEntry(2, models.StatusResolved)))

	c.IsReopened = true
	c.Feedback = &models.Feedback{IsSatisfied: false, Comment: "still cold", Timestamp: time.Now()}
	require.NoError(t, s.SaveComplaintState(ctx, c, c.Version, nil))
	assert.NotEmpty(t, c.Feedback.ID)

	stored, err := s.GetComplaint(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Feedback)
	assert.Equal(t, "still cold", stored.Feedback.Comment)
	assert.True(t, stored.IsReopened)

	require.NoError(t, s.SaveComplaintState(ctx, c, c.Version, nil))
	assert.Equal(t, int64(1), countFeedback(), "an existing feedback row is not inserted again")

	c.Feedback = nil
	c.IsReopened = false
	require.NoError(t, s.SaveComplaintState(ctx, c, c.Version, historyEntry(3, models.StatusResolved)))
	assert.Equal(t, int64(0), countFeedback())

	stored, err = s.GetComplaint(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Feedback)
	assert.Equal(t, 5, stored.Version)
}

func TestStudentAdministrationQueries(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	users := []*models.User{
		{Name: "Asha", RollNumber: "21cs042", Role: config.RoleStudent, Course: config.CourseBTech, Branch: "CSE", RoomNumber: "33"},
		{Name: "Ravi", RollNumber: "21EC007", Role: config.RoleStudent, Course: config.CourseBTech, Branch: "ECE", RoomNumber: "33"},
		{Name: "Meera", RollNumber: "22PH001", Role: config.RoleStudent, Course: config.CoursePharmacy, Branch: "B.Pharmacy", RoomNumber: "35"},
		{Name: "Warden", RollNumber: "WD01", Role: config.RoleAdmin},
	}
	for _, u := range users {
		u.PasswordHash = "x"
		require.NoError(t, s.CreateUser(ctx, u))
	}
	asha, ravi, meera, warden := users[0], users[1], users[2], users[3]

	list, err := s.ListStudents(ctx, StudentFilter{Course: config.CourseBTech, RoomNumber: "33"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []string{asha.ID, ravi.ID}, []string{list[0].ID, list[1].ID})

	list, err = s.ListStudents(ctx, StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3, "admins are not listed")

	n, err := s.CountUsersByRole(ctx, config.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	meera.RoomNumber = "36"
	require.NoError(t, s.UpdateStudent(ctx, meera))
	stored, err := s.FindUserByID(ctx, meera.ID)
	require.NoError(t, err)
	assert.Equal(t, "36", stored.RoomNumber)
	assert.True(t, apperr.IsNotFound(s.UpdateStudent(ctx, warden)))

	seedComplaint(t, s, asha.ID)
	err = s.DeleteStudent(ctx, asha.ID)
	assert.True(t, apperr.IsConflict(err), "students with complaints are kept")
	_, err = s.FindUserByID(ctx, asha.ID)
	assert.NoError(t, err)

	require.NoError(t, s.DeleteStudent(ctx, ravi.ID))
	_, err = s.FindUserByID(ctx, ravi.ID)
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(s.DeleteStudent(ctx, warden.ID)), "admins can't be deleted here")
}
