package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[int64]*domain.User
	nextID  int64
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubTodoRepo struct {
	todos   map[int64]*domain.Todo
	nextID  int64
	listErr error
	listed  int
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo), nextID: 1}
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	copy := *todo
	copy.ID = r.nextID
	r.nextID++
	stored := copy
	r.todos[copy.ID] = &stored
	return &copy, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	copy := *t
	return &copy, nil
}

func (r *stubTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	r.listed++
	if r.listErr != nil {
		return nil, r.listErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []domain.Todo
	for _, t := range r.sorted() {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubTodoRepo) ListAll(_ context.Context) ([]domain.Todo, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(), nil
}

func (r *stubTodoRepo) sorted() []domain.Todo {
	out := make([]domain.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	copy := *todo
	r.todos[todo.ID] = &copy
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

type stubTodoCache struct {
	mu          sync.Mutex
	lists       map[int64][]domain.Todo
	versions    map[int64]int64
	getErr      error
	invalidated []int64
}

func newStubTodoCache() *stubTodoCache {
	return &stubTodoCache{lists: make(map[int64][]domain.Todo), versions: make(map[int64]int64)}
}

func (c *stubTodoCache) GetList(_ context.Context, ownerID int64) ([]domain.Todo, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	todos, ok := c.lists[ownerID]
	return todos, ok, nil
}

func (c *stubTodoCache) Version(_ context.Context, ownerID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[ownerID], nil
}

func (c *stubTodoCache) SetList(_ context.Context, ownerID, version int64, todos []domain.Todo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[ownerID] != version {
		return nil
	}
	c.lists[ownerID] = todos
	return nil
}

func (c *stubTodoCache) Invalidate(_ context.Context, ownerID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[ownerID]++
	delete(c.lists, ownerID)
	c.invalidated = append(c.invalidated, ownerID)
	return nil
}

// blockingTodoRepo reads the owner's list, then parks until released, so a
// write can land between the read and the cache fill.
type blockingTodoRepo struct {
	*stubTodoRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	todos, err := r.stubTodoRepo.ListByOwner(ctx, ownerID)
	blocked := false
	r.once.Do(func() { blocked = true })
	if blocked {
		close(r.entered)
		<-r.release
	}
	return todos, err
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *recordingAuditor) Record(e domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAuditor) types() []domain.AuthEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventType, len(a.events))
	for i, e := range a.events {
		out[i] = e.Type
	}
	return out
}

type stubAuthEventRepo struct {
	inserted []domain.AuthEvent
	err      error
}

func (r *stubAuthEventRepo) InsertAuthEvent(_ context.Context, e domain.AuthEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, e)
	return nil
}

var errBoom = errors.New("boom")
