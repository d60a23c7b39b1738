package complaint

import (
	"context"
	"log"

	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
)

// View is a complaint as returned to clients, with the reporting student
// and the assigned member resolved. Either is null when it can't be found.
type View struct {
	*models.Complaint
	Student    *models.StudentView `json:"student"`
	AssignedTo *models.MemberView  `json:"assignedTo"`
}

// View resolves the references of c.
func (s *Service) View(ctx context.Context, c *models.Complaint) *View {
	if c == nil {
		return nil
	}
	return newResolver(s.Users, s.Members).view(ctx, c)
}

// Views resolves a list of complaints, looking each person up once.
func (s *Service) Views(ctx context.Context, list []models.Complaint) []View {
	refs := newResolver(s.Users, s.Members)
	out := make([]View, 0, len(list))
	for i := range list {
		out = append(out, *refs.view(ctx, &list[i]))
	}
	return out
}

// resolver looks up users and members by id for a single read and
// remembers misses as nil.
type resolver struct {
	users   UserDirectory
	members MemberDirectory

	byUser   map[string]*models.User
	byMember map[string]*models.Member
}

func newResolver(users UserDirectory, members MemberDirectory) *resolver {
	return &resolver{
		users:    users,
		members:  members,
		byUser:   map[string]*models.User{},
		byMember: map[string]*models.Member{},
	}
}

func (r *resolver) view(ctx context.Context, c *models.Complaint) *View {
	v := &View{Complaint: c, Student: r.user(ctx, c.StudentID).StudentView()}
	if c.AssignedToID != nil {
		v.AssignedTo = r.member(ctx, *c.AssignedToID).View()
	}
	return v
}

func (r *resolver) user(ctx context.Context, id string) *models.User {
	if u, ok := r.byUser[id]; ok {
		return u
	}
	u, err := r.users.FindUserByID(ctx, id)
	if err != nil {
		if !apperr.IsNotFound(err) {
			log.Printf("WARN: Could not resolve user %s: %v", id, err)
		}
		u = nil
	}
	r.byUser[id] = u
	return u
}

func (r *resolver) member(ctx context.Context, id string) *models.Member {
	if m, ok := r.byMember[id]; ok {
		return m
	}
	m, err := r.members.FindMemberByID(ctx, id)
	if err != nil {
		if !apperr.IsNotFound(err) {
			log.Printf("WARN: Could not resolve member %s: %v", id, err)
		}
		m = nil
	}
	r.byMember[id] = m
	return m
}
