package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

type TaskService struct {
	tasks TaskStore
}

type TaskInput struct {
	Title          string
	Description    string
	Cost           float64
	HoursEstimated float64
}

// TaskUpdate has no owner field: whatever an update body claims about
// ownership never reaches the store.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Cost           *float64
	HoursEstimated *float64
	Completed      *bool
}

func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, caller *models.User, input TaskInput) (*models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)

	if details := validateTaskInput(input); details != nil {
		return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", details)
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Cost:           input.Cost,
		HoursEstimated: input.HoursEstimated,
		OwnerID:        caller.ID, // owner comes from the caller, never the body
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not create task", nil)
	}
	return created, nil
}

func (s *TaskService) List(ctx context.Context, caller *models.User) ([]models.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not list tasks", nil)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, caller *models.User, id string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, caller.ID)
	if err != nil {
		return nil, taskLookupError(err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, caller *models.User, id string, update TaskUpdate) (*models.Task, error) {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		update.Title = &trimmed
	}

	if details := validateTaskUpdate(update); details != nil {
		return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", details)
	}

	task, err := s.tasks.Update(ctx, id, caller.ID, repo.TaskPatch{
		Title:          update.Title,
		Description:    update.Description,
		Cost:           update.Cost,
		HoursEstimated: update.HoursEstimated,
		Completed:      update.Completed,
	})
	if err != nil {
		return nil, taskLookupError(err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, caller *models.User, id string) error {
	if err := s.tasks.Delete(ctx, id, caller.ID); err != nil {
		return taskLookupError(err)
	}
	return nil
}

// Stats aggregates over the caller's own tasks; a caller with no tasks
// gets an all-zero struct.
func (s *TaskService) Stats(ctx context.Context, caller *models.User) (*models.TaskStats, error) {
	stats, err := s.tasks.StatsByOwner(ctx, caller.ID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not compute stats", nil)
	}
	return stats, nil
}

func validateTaskInput(input TaskInput) []map[string]string {
	var details []map[string]string
	if input.Title == "" {
		details = append(details, map[string]string{"title": "title is required"})
	} else if utf8.RuneCountInString(input.Title) > maxTitleLen {
		details = append(details, map[string]string{"title": "title cannot exceed 100 characters"})
	}
	if input.Description == "" {
		details = append(details, map[string]string{"description": "description is required"})
	} else if utf8.RuneCountInString(input.Description) > maxDescriptionLen {
		details = append(details, map[string]string{"description": "description cannot exceed 500 characters"})
	}
	if input.Cost < 0 {
		details = append(details, map[string]string{"cost": "cost cannot be negative"})
	}
	if input.HoursEstimated < 0 {
		details = append(details, map[string]string{"hoursEstimated": "estimated hours cannot be negative"})
	}
	return details
}

func validateTaskUpdate(update TaskUpdate) []map[string]string {
	var details []map[string]string
	if update.Title != nil {
		if *update.Title == "" {
			details = append(details, map[string]string{"title": "title is required"})
		} else if utf8.RuneCountInString(*update.Title) > maxTitleLen {
			details = append(details, map[string]string{"title": "title cannot exceed 100 characters"})
		}
	}
	if update.Description != nil {
		if *update.Description == "" {
			details = append(details, map[string]string{"description": "description is required"})
		} else if utf8.RuneCountInString(*update.Description) > maxDescriptionLen {
			details = append(details, map[string]string{"description": "description cannot exceed 500 characters"})
		}
	}
	if update.Cost != nil && *update.Cost < 0 {
		details = append(details, map[string]string{"cost": "cost cannot be negative"})
	}
	if update.HoursEstimated != nil && *update.HoursEstimated < 0 {
		details = append(details, map[string]string{"hoursEstimated": "estimated hours cannot be negative"})
	}
	return details
}

func taskLookupError(err error) error {
	if errors.Is(err, repo.ErrTaskNotFound) {
		return utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "task not found", nil)
	}
	return utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "task lookup failed", nil)
}
