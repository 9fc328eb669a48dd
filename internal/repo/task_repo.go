package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

const taskColumns = "id, title, description, cost, hours_estimated, completed, owner_id, created_at"

type TaskRepo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// TaskPatch carries the fields an update may touch; nil means "leave as
// is". There is deliberately no owner field here.
type TaskPatch struct {
	Title          *string
	Description    *string
	Cost           *float64
	HoursEstimated *float64
	Completed      *bool
}

func NewTaskRepo(pool *pgxpool.Pool, timeout time.Duration) *TaskRepo {
	return &TaskRepo{pool: pool, timeout: timeout}
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	task.ID = uuid.NewString()
	task.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (id, title, description, cost, hours_estimated, completed, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, task.ID, task.Title, task.Description, task.Cost, task.HoursEstimated, task.Completed, task.OwnerID, task.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return collectTasks(rows)
}

// GetByID is owner-scoped: a task that exists but belongs to someone
// else is indistinguishable from one that does not exist.
func (r *TaskRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	return scanTask(row)
}

func (r *TaskRepo) Update(ctx context.Context, id, ownerID string, patch TaskPatch) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title           = COALESCE($1, title),
		    description     = COALESCE($2, description),
		    cost            = COALESCE($3, cost),
		    hours_estimated = COALESCE($4, hours_estimated),
		    completed       = COALESCE($5, completed)
		WHERE id = $6 AND owner_id = $7
		RETURNING `+taskColumns,
		patch.Title, patch.Description, patch.Cost, patch.HoursEstimated, patch.Completed, id, ownerID)
	return scanTask(row)
}

func (r *TaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		if isInvalidUUID(err) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) StatsByOwner(ctx context.Context, ownerID string) (*models.TaskStats, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(cost), 0),
		       COALESCE(SUM(hours_estimated), 0),
		       COUNT(*) FILTER (WHERE completed)
		FROM tasks
		WHERE owner_id = $1
	`, ownerID)

	var stats models.TaskStats
	if err := row.Scan(&stats.TotalTasks, &stats.TotalCost, &stats.TotalHours, &stats.CompletedTasks); err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	return &stats, nil
}

// ListAllWithOwners returns every task in the system joined with its
// owner's summary, for the admin listing.
func (r *TaskRepo) ListAllWithOwners(ctx context.Context) ([]models.AdminTask, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.title, t.description, t.cost, t.hours_estimated, t.completed, t.owner_id, t.created_at,
		       u.id, u.name, u.email, u.role
		FROM tasks t
		JOIN users u ON u.id = t.owner_id
		ORDER BY t.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.AdminTask
	for rows.Next() {
		var at models.AdminTask
		if err := rows.Scan(
			&at.ID, &at.Title, &at.Description, &at.Cost, &at.HoursEstimated, &at.Completed, &at.OwnerID, &at.CreatedAt,
			&at.Owner.ID, &at.Owner.Name, &at.Owner.Email, &at.Owner.Role,
		); err != nil {
			return nil, fmt.Errorf("scan admin task: %w", err)
		}
		tasks = append(tasks, at)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Cost, &t.HoursEstimated, &t.Completed, &t.OwnerID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Cost, &t.HoursEstimated, &t.Completed, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
