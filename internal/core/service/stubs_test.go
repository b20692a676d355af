package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/olufemi424/cpa-automation/internal/core/domain"
	"github.com/olufemi424/cpa-automation/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub: clients
// ---------------------------------------------------------------------------

type stubClientRepo struct {
	mu        sync.Mutex // some tests hit the repo from several goroutines
	byID      map[string]*domain.Client
	seq       int
	createErr error
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{byID: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("client-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) FindAccessByID(_ context.Context, id string) (*domain.ClientAccess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &domain.ClientAccess{UserID: c.UserID, AssignedCPAID: c.AssignedCPAID}, nil
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

// List applies the same filters the real Mongo repo would use.
func (r *stubClientRepo) List(_ context.Context, f ports.ListClientsFilter) ([]*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Client
	for _, c := range r.byID {
		if !f.Scope.Matches(c.UserID, c.AssignedCPAID) {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.Name), s) &&
				!strings.Contains(strings.ToLower(c.Email), s) &&
				!strings.Contains(strings.ToLower(c.BusinessName), s) {
				continue
			}
		}
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubClientRepo) Update(_ context.Context, id string, upd ports.ClientUpdate) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Email != nil {
		c.Email = *upd.Email
	}
	if upd.Phone != nil {
		c.Phone = *upd.Phone
	}
	if upd.BusinessName != nil {
		c.BusinessName = *upd.BusinessName
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	if upd.ProgressPercentage != nil {
		c.ProgressPercentage = *upd.ProgressPercentage
	}
	c.UpdatedAt = time.Now().UTC()
	clone := *c
	return &clone, nil
}

func (r *stubClientRepo) CountAssigned(_ context.Context, cpaID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.byID {
		if c.AssignedCPAID == cpaID {
			n++
		}
	}
	return n, nil
}

func (r *stubClientRepo) Count(_ context.Context, scope domain.AccessScope) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.byID {
		if scope.Matches(c.UserID, c.AssignedCPAID) {
			n++
		}
	}
	return n, nil
}

func (r *stubClientRepo) CountByStatus(_ context.Context, scope domain.AccessScope) (map[domain.ClientStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.ClientStatus]int64)
	for _, c := range r.byID {
		if scope.Matches(c.UserID, c.AssignedCPAID) {
			out[c.Status]++
		}
	}
	return out, nil
}

// add seeds a client directly, bypassing intake.
func (r *stubClientRepo) add(c *domain.Client) *domain.Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("client-%d", r.seq)
	}
	clone := *c
	r.byID[clone.ID] = &clone
	return c
}

// ---------------------------------------------------------------------------
// In-memory stub: users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	order     []string // insertion order, so tie-breaks are deterministic
	seq       int
	createErr error
	deleted   []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
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

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(u.Name), s) && !strings.Contains(strings.ToLower(u.Email), s) {
				continue
			}
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range r.order {
		u, ok := r.byID[id]
		if ok && u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Update mirrors the transactional last-admin guard of the Mongo repository.
func (r *stubUserRepo) Update(_ context.Context, id string, upd ports.UserUpdate) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Role != nil && u.Role == domain.RoleAdmin && *upd.Role != domain.RoleAdmin {
		if r.countRole(domain.RoleAdmin) <= 1 {
			return nil, domain.ErrLastAdmin
		}
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.PasswordHash != nil {
		u.PasswordHash = *upd.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.Role == domain.RoleAdmin && r.countRole(domain.RoleAdmin) <= 1 {
		return domain.ErrLastAdmin
	}
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	return r.countRole(role), nil
}

func (r *stubUserRepo) countRole(role string) int64 {
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.seq)
	}
	clone := *u
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	return u
}

// ---------------------------------------------------------------------------
// In-memory stub: tasks
// ---------------------------------------------------------------------------

type stubTaskRepo struct {
	byID    map[string]*domain.Task
	clients *stubClientRepo
	seq     int
}

func newStubTaskRepo(clients *stubClientRepo) *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task), clients: clients}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("task-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) inScope(t *domain.Task, scope domain.AccessScope) bool {
	c, ok := r.clients.byID[t.ClientID]
	if !ok {
		return false
	}
	return scope.Matches(c.UserID, c.AssignedCPAID)
}

func (r *stubTaskRepo) List(_ context.Context, f ports.ListTasksFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if !r.inScope(t, f.Scope) {
			continue
		}
		if f.ClientID != "" && t.ClientID != f.ClientID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.AssignedToID != "" && t.AssignedToID != f.AssignedToID {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title), s) && !strings.Contains(strings.ToLower(t.Description), s) {
				continue
			}
		}
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, upd ports.TaskUpdate) (*domain.Task, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Status != nil {
		t.Status = *upd.Status
	}
	if upd.AssignedToID != nil {
		t.AssignedToID = *upd.AssignedToID
	}
	if upd.DueDate != nil {
		t.DueDate = *upd.DueDate
	}
	if upd.IsCompleted != nil {
		t.IsCompleted = *upd.IsCompleted
		if *upd.IsCompleted {
			t.CompletedAt = upd.CompletedAt
		} else {
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, scope domain.AccessScope) (map[domain.ClientStatus]int64, error) {
	out := make(map[domain.ClientStatus]int64)
	for _, t := range r.byID {
		if r.inScope(t, scope) {
			out[t.Status]++
		}
	}
	return out, nil
}

func (r *stubTaskRepo) CountCompletedSince(_ context.Context, scope domain.AccessScope, since time.Time) (int64, error) {
	var n int64
	for _, t := range r.byID {
		if r.inScope(t, scope) && t.IsCompleted && t.CompletedAt != nil && !t.CompletedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) CountOverdue(_ context.Context, scope domain.AccessScope, now time.Time) (int64, error) {
	var n int64
	for _, t := range r.byID {
		if r.inScope(t, scope) && !t.IsCompleted && t.DueDate.Before(now) {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) ListDueBetween(_ context.Context, scope domain.AccessScope, from, to time.Time) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if r.inScope(t, scope) && !t.IsCompleted && !t.DueDate.Before(from) && !t.DueDate.After(to) {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// In-memory stub: documents
// ---------------------------------------------------------------------------

type stubDocumentRepo struct {
	byID map[string]*domain.Document
	seq  int
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{byID: make(map[string]*domain.Document)}
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) (*domain.Document, error) {
	r.seq++
	clone := *d
	clone.ID = fmt.Sprintf("doc-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDocumentRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range r.byID {
		if d.ClientID == clientID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) SetVerified(_ context.Context, id string, verified bool) (*domain.Document, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	d.IsVerified = verified
	clone := *d
	return &clone, nil
}

// ---------------------------------------------------------------------------
// In-memory stub: messages
// ---------------------------------------------------------------------------

type stubMessageRepo struct {
	byID        map[string]*domain.Message
	seq         int
	markReadErr error
	lastReader  string
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{byID: make(map[string]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.seq++
	clone := *m
	clone.ID = fmt.Sprintf("msg-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMessageRepo) FindByID(_ context.Context, id string) (*domain.Message, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMessageRepo) ListByClient(_ context.Context, clientID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for i := 1; i <= r.seq; i++ {
		m, ok := r.byID[fmt.Sprintf("msg-%d", i)]
		if ok && m.ClientID == clientID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, clientID, readerID string, at time.Time) error {
	if r.markReadErr != nil {
		return r.markReadErr
	}
	r.lastReader = readerID
	for _, m := range r.byID {
		if m.ClientID == clientID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			t := at
			m.ReadAt = &t
		}
	}
	return nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, scope domain.AccessScope) (int64, error) {
	var n int64
	for _, m := range r.byID {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type stubFileStore struct {
	saves   int
	saveErr error
}

func (s *stubFileStore) Save(_ context.Context, clientID, fileName string, _ []byte) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saves++
	return "/uploads/" + clientID + "/" + fileName, nil
}
