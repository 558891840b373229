package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
	"github.com/sitecrew/workforce-scheduler/internal/core/session"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	createErr error
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for i := range users {
		u := users[i]
		r.byID[u.ID] = &u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]domain.User, error) {
	out := make([]domain.User, 0)
	search := strings.ToLower(f.Search)
	for _, u := range r.byID {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Order == ports.UsersByFirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubUserRepo) Count(ctx context.Context, f ports.ListUsersFilter) (int64, error) {
	users, _ := r.List(ctx, f)
	return int64(len(users)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubProjectRepo struct {
	byID map[string]*domain.Project
}

func newStubProjectRepo(projects ...domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{byID: make(map[string]*domain.Project)}
	for i := range projects {
		p := projects[i]
		r.byID[p.ID] = &p
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) error {
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, f ports.ListProjectsFilter) ([]domain.Project, error) {
	var ids map[string]struct{}
	if f.IDs != nil {
		ids = make(map[string]struct{}, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = struct{}{}
		}
	}
	out := make([]domain.Project, 0)
	for _, p := range r.byID {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if ids != nil {
			if _, ok := ids[p.ID]; !ok {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Order == ports.ProjectsByName {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubProjectRepo) Count(ctx context.Context, f ports.ListProjectsFilter) (int64, error) {
	ps, _ := r.List(ctx, f)
	return int64(len(ps)), nil
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubAssignmentRepo keeps insertion order, like a table without an index.
type stubAssignmentRepo struct {
	rows      []domain.Assignment
	users     *stubUserRepo
	projects  *stubProjectRepo
	createErr error
}

// occupied mirrors the unique (user, date, project) index.
func (r *stubAssignmentRepo) occupied(a domain.Assignment) bool {
	for _, row := range r.rows {
		if row.UserID == a.UserID && row.Date == a.Date && row.ProjectID == a.ProjectID {
			return true
		}
	}
	return false
}

func (r *stubAssignmentRepo) Create(_ context.Context, a *domain.Assignment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.occupied(*a) {
		return domain.ErrAlreadyAssigned
	}
	r.rows = append(r.rows, a.Bare())
	return nil
}

// CreateMany inserts in order and stops at the first occupied cell, leaving
// earlier rows stored, as an ordered insert does.
func (r *stubAssignmentRepo) CreateMany(_ context.Context, as []domain.Assignment) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, a := range as {
		if r.occupied(a) {
			return domain.ErrAlreadyAssigned
		}
		r.rows = append(r.rows, a.Bare())
	}
	return nil
}

func (r *stubAssignmentRepo) FindByID(_ context.Context, id string) (*domain.Assignment, error) {
	for _, a := range r.rows {
		if a.ID == id {
			clone := a
			return &clone, nil
		}
	}
	return nil, domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) List(_ context.Context, f ports.ListAssignmentsFilter) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0)
	for _, a := range r.rows {
		if f.From != "" && a.Date < f.From {
			continue
		}
		if f.To != "" && a.Date > f.To {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.ProjectID != "" && a.ProjectID != f.ProjectID {
			continue
		}
		if f.Expand {
			if r.users != nil {
				if u, ok := r.users.byID[a.UserID]; ok {
					clone := *u
					a.User = &clone
				}
			}
			if r.projects != nil {
				if p, ok := r.projects.byID[a.ProjectID]; ok {
					clone := *p
					a.Project = &clone
				}
			}
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Newest {
			return out[i].Date > out[j].Date
		}
		return out[i].Date < out[j].Date
	})
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubAssignmentRepo) Count(ctx context.Context, f ports.ListAssignmentsFilter) (int64, error) {
	f.Limit = 0
	as, _ := r.List(ctx, f)
	return int64(len(as)), nil
}

func (r *stubAssignmentRepo) UpdateNotes(_ context.Context, id, notes string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Notes = notes
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) Delete(_ context.Context, id string) error {
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (r *stubAssignmentRepo) deleteWhere(keep func(domain.Assignment) bool) int64 {
	kept := r.rows[:0]
	var removed int64
	for _, a := range r.rows {
		if keep(a) {
			kept = append(kept, a)
		} else {
			removed++
		}
	}
	r.rows = kept
	return removed
}

func (r *stubAssignmentRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	return r.deleteWhere(func(a domain.Assignment) bool { return a.UserID != userID }), nil
}

func (r *stubAssignmentRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	return r.deleteWhere(func(a domain.Assignment) bool { return a.ProjectID != projectID }), nil
}

// ---------------------------------------------------------------------------
// Other stubs
// ---------------------------------------------------------------------------

type stubQueue struct {
	mu      sync.Mutex
	entries []domain.Activity
}

func (q *stubQueue) Enqueue(a domain.Activity) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, a)
}

func (q *stubQueue) EnqueueBatch(entries []domain.Activity) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, entries...)
}

func (q *stubQueue) kinds() []domain.ActivityKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.ActivityKind, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e.Kind)
	}
	return out
}

type stubGenerations struct {
	n   map[string]uint64
	err error
}

func (g *stubGenerations) Next(_ context.Context, scope string) (uint64, error) {
	if g.err != nil {
		return 0, g.err
	}
	if g.n == nil {
		g.n = make(map[string]uint64)
	}
	g.n[scope]++
	return g.n[scope], nil
}

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type fixture struct {
	users       *stubUserRepo
	projects    *stubProjectRepo
	assignments *stubAssignmentRepo
	queue       *stubQueue
	sessions    *session.Manager
}

func newFixture(users []domain.User, projects []domain.Project) *fixture {
	f := &fixture{
		users:    newStubUserRepo(users...),
		projects: newStubProjectRepo(projects...),
		queue:    &stubQueue{},
		sessions: session.NewManager(session.NewMemoryStore(), 0, discardLogger),
	}
	f.assignments = &stubAssignmentRepo{users: f.users, projects: f.projects}
	return f
}

func (f *fixture) seed(userID, projectID string, dates ...string) {
	for i, d := range dates {
		f.assignments.rows = append(f.assignments.rows, domain.Assignment{
			ID:        userID + "-" + projectID + "-" + strconv.Itoa(i) + "-" + d,
			UserID:    userID,
			ProjectID: projectID,
			Date:      d,
		})
	}
}

func (f *fixture) assignmentService() *AssignmentService {
	return NewAssignmentService(f.assignments, f.users, f.projects, f.queue, discardLogger)
}

func (f *fixture) userService() *UserService {
	return NewUserService(f.users, f.assignments, f.sessions, f.queue, discardLogger)
}

func (f *fixture) projectService() *ProjectService {
	return NewProjectService(f.projects, f.assignments, f.queue, discardLogger)
}

func crew() []domain.User {
	return []domain.User{
		{ID: "u1", FirstName: "Jean", LastName: "Dupont", Role: domain.RoleWorker, Status: domain.StatusPresent},
		{ID: "u2", FirstName: "Marie", LastName: "Curie", Role: domain.RoleSupervisor, Status: domain.StatusPresent},
		{ID: "u3", FirstName: "Paul", LastName: "Martin", Role: domain.RoleWorker, Status: domain.StatusAbsent},
		{ID: "admin", FirstName: "Alice", LastName: "Admin", Role: domain.RoleAdmin, Status: domain.StatusPresent},
	}
}

func sites() []domain.Project {
	return []domain.Project{
		{ID: "p1", Name: "Tower", Status: domain.ProjectInProgress},
		{ID: "p2", Name: "Bridge", Status: domain.ProjectInProgress},
		{ID: "p3", Name: "Annex", Status: domain.ProjectPending},
	}
}
