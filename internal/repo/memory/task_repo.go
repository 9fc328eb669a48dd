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

type TaskRepo struct {
	mu    sync.RWMutex
	items map[string]models.Task
	users *UserRepo
	clock time.Time
}

func NewTaskRepo() *TaskRepo {
	return &TaskRepo{
		items: make(map[string]models.Task),
		clock: time.Now().UTC(),
	}
}

// NewStores wires an in-memory user and task repo pair, so cascade
// deletes and owner joins work across the two.
func NewStores() (*UserRepo, *TaskRepo) {
	tasks := NewTaskRepo()
	users := NewUserRepo(tasks)
	tasks.users = users
	return users, tasks
}

func (r *TaskRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *TaskRepo) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *task
	t.ID = uuid.NewString()
	t.CreatedAt = r.tick()
	r.items[t.ID] = t

	out := t
	return &out, nil
}

func (r *TaskRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []models.Task
	for _, t := range r.items {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskRepo) GetByID(_ context.Context, id, ownerID string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrTaskNotFound
	}
	out := t
	return &out, nil
}

func (r *TaskRepo) Update(_ context.Context, id, ownerID string, patch repo.TaskPatch) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repo.ErrTaskNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Cost != nil {
		t.Cost = *patch.Cost
	}
	if patch.HoursEstimated != nil {
		t.HoursEstimated = *patch.HoursEstimated
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	r.items[id] = t

	out := t
	return &out, nil
}

func (r *TaskRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]
	if !ok || t.OwnerID != ownerID {
		return repo.ErrTaskNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *TaskRepo) StatsByOwner(_ context.Context, ownerID string) (*models.TaskStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.TaskStats
	for _, t := range r.items {
		if t.OwnerID != ownerID {
			continue
		}
		stats.TotalTasks++
		stats.TotalCost += t.Cost
		stats.TotalHours += t.HoursEstimated
		if t.Completed {
			stats.CompletedTasks++
		}
	}
	return &stats, nil
}

func (r *TaskRepo) ListAllWithOwners(ctx context.Context) ([]models.AdminTask, error) {
	r.mu.RLock()
	tasks := make([]models.Task, 0, len(r.items))
	for _, t := range r.items {
		tasks = append(tasks, t)
	}
	r.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	out := make([]models.AdminTask, 0, len(tasks))
	for _, t := range tasks {
		at := models.AdminTask{Task: t}
		if r.users != nil {
			if owner, err := r.users.GetByID(ctx, t.OwnerID); err == nil {
				at.Owner = models.TaskOwner{
					ID:    owner.ID,
					Name:  owner.Name,
					Email: owner.Email,
					Role:  owner.Role,
				}
			}
		}
		out = append(out, at)
	}
	return out, nil
}

// deleteByOwner is the task half of the user cascade; the caller holds
// the user repo lock.
func (r *TaskRepo) deleteByOwner(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.items {
		if t.OwnerID == ownerID {
			delete(r.items, id)
		}
	}
}
