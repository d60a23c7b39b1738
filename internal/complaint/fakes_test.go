package complaint_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"hostelcare/backend/internal/complaint"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/notification"
	"hostelcare/backend/internal/storage"

	"github.com/google/uuid"
)

// memStore keeps complaints in memory and applies the same version check
// as the gorm store.
type memStore struct {
	mu         sync.Mutex
	complaints map[string]*models.Complaint
	// beforeSave runs inside SaveComplaintState before the version check.
	beforeSave func(id string)
}

func newMemStore() *memStore {
	return &memStore{complaints: map[string]*models.Complaint{}}
}

func cloneComplaint(c *models.Complaint) *models.Complaint {
	out := *c
	out.StatusHistory = append([]models.StatusHistoryEntry(nil), c.StatusHistory...)
	if c.Feedback != nil {
		fb := *c.Feedback
		out.Feedback = &fb
	}
	if c.AssignedToID != nil {
		id := *c.AssignedToID
		out.AssignedToID = &id
	}
	return &out
}

func (s *memStore) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	for i := range c.StatusHistory {
		c.StatusHistory[i].ComplaintID = c.ID
	}
	s.complaints[c.ID] = cloneComplaint(c)
	return nil
}

func (s *memStore) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.complaints[id]
	if !ok {
		return nil, apperr.NewNotFound("complaint not found")
	}
	return cloneComplaint(c), nil
}

func (s *memStore) ListComplaints(ctx context.Context, filter storage.ComplaintFilter) ([]models.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Complaint
	for _, c := range s.complaints {
		if filter.StudentID != "" && c.StudentID != filter.StudentID {
			continue
		}
		out = append(out, *cloneComplaint(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) SaveComplaintState(ctx context.Context, c *models.Complaint, expectedVersion int, entry *models.StatusHistoryEntry) error {
	if s.beforeSave != nil {
		s.beforeSave(c.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.complaints[c.ID]
	if !ok || stored.Version != expectedVersion {
		return apperr.NewConflict("complaint was modified concurrently, reload and retry", nil)
	}
	if c.Feedback != nil && c.Feedback.ID == "" && stored.Feedback != nil {
		return apperr.NewDuplicateFeedback("feedback already submitted for this complaint")
	}

	next := cloneComplaint(c)
	next.StatusHistory = stored.StatusHistory
	if entry != nil {
		entry.ComplaintID = c.ID
		next.StatusHistory = append(next.StatusHistory, *entry)
	}
	if next.Feedback != nil && next.Feedback.ID == "" {
		next.Feedback.ID = uuid.New().String()
		c.Feedback.ID = next.Feedback.ID
	}
	next.Version = expectedVersion + 1
	s.complaints[c.ID] = next

	c.Version = next.Version
	if entry != nil {
		c.StatusHistory = append(c.StatusHistory, *entry)
	}
	return nil
}

// bump simulates a concurrent writer.
func (s *memStore) bump(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints[id].Version++
}

type memDirectory struct {
	users   map[string]*models.User
	members map[string]*models.Member
}

func newMemDirectory() *memDirectory {
	return &memDirectory{users: map[string]*models.User{}, members: map[string]*models.Member{}}
}

func (d *memDirectory) addUser(id, name, role string) {
	d.users[id] = &models.User{ID: id, Name: name, Role: role}
}

func (d *memDirectory) addMember(id, category string, active bool) {
	d.members[id] = &models.Member{ID: id, Name: "member " + id, Category: category, IsActive: active}
}

func (d *memDirectory) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return nil, apperr.NewNotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func (d *memDirectory) ListUsersByRole(ctx context.Context, roles ...string) ([]models.User, error) {
	var out []models.User
	for _, u := range d.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, *u)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (d *memDirectory) FindMemberByID(ctx context.Context, id string) (*models.Member, error) {
	m, ok := d.members[id]
	if !ok {
		return nil, apperr.NewNotFound("member not found")
	}
	cp := *m
	return &cp, nil
}

type sentBatch struct {
	Kind       string
	Recipients []string
	Payload    notification.Payload
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches []sentBatch
}

func (n *recordingNotifier) Notify(ctx context.Context, kind string, recipients []string, p notification.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, sentBatch{Kind: kind, Recipients: recipients, Payload: p})
}

func (n *recordingNotifier) last() sentBatch {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batches[len(n.batches)-1]
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches)
}

// plainMessages renders keys as-is so tests don't depend on the catalog.
type plainMessages struct{}

func (plainMessages) Format(key string, args ...any) string {
	out := key
	for _, a := range args {
		if s, ok := a.(string); ok {
			out += "|" + s
		}
	}
	return out
}

type fixture struct {
	store    *memStore
	dir      *memDirectory
	notifier *recordingNotifier
	svc      *complaint.Service
	clock    time.Time
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemStore(),
		dir:      newMemDirectory(),
		notifier: &recordingNotifier{},
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.dir.addUser("admin1", "Warden", "admin")
	f.dir.addUser("admin2", "Deputy", "admin")
	f.dir.addUser("stu1", "Asha", "student")
	f.dir.addUser("stu2", "Ravi", "student")
	f.dir.addMember("elec1", "Electrical", true)
	f.dir.addMember("elec-off", "Electrical", false)
	f.dir.addMember("plumb1", "Plumbing", true)
	f.dir.addMember("food1", "Food", true)

	f.svc = complaint.NewService(f.store, f.dir, f.dir, f.notifier, plainMessages{})
	f.svc.Now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	return f
}
