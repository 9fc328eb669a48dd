package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo"
)

// UserRepo is an in-memory stand-in for the pgx user repository. It
// returns the same sentinel errors, so services and tests behave the
// same against either.
type UserRepo struct {
	mu    sync.RWMutex
	items map[string]models.User
	tasks *TaskRepo
	clock time.Time
}

func NewUserRepo(tasks *TaskRepo) *UserRepo {
	return &UserRepo{
		items: make(map[string]models.User),
		tasks: tasks,
		clock: time.Now().UTC(),
	}
}

// tick hands out strictly increasing timestamps so created_at ordering
// is deterministic.
func (r *UserRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *UserRepo) Create(_ context.Context, name, email, passwordHash, role string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.items {
		if u.Email == email {
			return nil, repo.ErrEmailTaken
		}
	}

	now := r.tick()
	u := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.items[u.ID] = u

	out := u
	return &out, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	out := u
	return &out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repo.ErrUserNotFound
}

func (r *UserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.items {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.items))
	for _, u := range r.items {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, id string, name, email *string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}

	if email != nil {
		for otherID, other := range r.items {
			if otherID != id && other.Email == *email {
				return nil, repo.ErrEmailTaken
			}
		}
		u.Email = *email
	}
	if name != nil {
		u.Name = *name
	}
	u.UpdatedAt = r.tick()
	r.items[id] = u

	out := u
	return &out, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return repo.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = r.tick()
	r.items[id] = u
	return nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id, role string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		return nil, repo.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = r.tick()
	r.items[id] = u

	out := u
	return &out, nil
}

func (r *UserRepo) DeleteWithTasks(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return repo.ErrUserNotFound
	}

	if r.tasks != nil {
		r.tasks.deleteByOwner(id)
	}
	delete(r.items, id)
	return nil
}
