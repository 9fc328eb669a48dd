package services

import (
	"context"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo"
)

// Store interfaces are kept small so tests can fake them without a
// database. The pgx repositories satisfy them.

type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, name, email *string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateRole(ctx context.Context, id, role string) (*models.User, error)
	DeleteWithTasks(ctx context.Context, id string) error
}

type TaskStore interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)
	GetByID(ctx context.Context, id, ownerID string) (*models.Task, error)
	Update(ctx context.Context, id, ownerID string, patch repo.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
	StatsByOwner(ctx context.Context, ownerID string) (*models.TaskStats, error)
	ListAllWithOwners(ctx context.Context) ([]models.AdminTask, error)
}
