package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

type AdminService struct {
	users UserStore
	tasks TaskStore
}

func NewAdminService(users UserStore, tasks TaskStore) *AdminService {
	return &AdminService{users: users, tasks: tasks}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not list users", nil)
	}

	out := make([]*models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *AdminService) ListTasks(ctx context.Context) ([]models.AdminTask, error) {
	tasks, err := s.tasks.ListAllWithOwners(ctx)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not list tasks", nil)
	}
	return tasks, nil
}

// DeleteUser removes the target user and cascades to their tasks. The
// task deletion and the user deletion commit together in the store.
func (s *AdminService) DeleteUser(ctx context.Context, caller *models.User, targetID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return userLookupError(err)
	}

	if target.ID == caller.ID {
		return utils.NewAppError(http.StatusBadRequest, "SELF_DELETION_FORBIDDEN",
			"you cannot delete your own account", nil)
	}

	if err := s.users.DeleteWithTasks(ctx, target.ID); err != nil {
		return userLookupError(err)
	}
	return nil
}

func (s *AdminService) ChangeUserRole(ctx context.Context, caller *models.User, targetID, role string) (*models.PublicUser, error) {
	if !models.ValidRole(role) {
		return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request",
			fieldErrors("role", "role must be either user or admin"))
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, userLookupError(err)
	}

	if target.ID == caller.ID {
		return nil, utils.NewAppError(http.StatusBadRequest, "SELF_ROLE_CHANGE_FORBIDDEN",
			"you cannot change your own role", nil)
	}

	updated, err := s.users.UpdateRole(ctx, target.ID, role)
	if err != nil {
		return nil, userLookupError(err)
	}
	return updated.Public(), nil
}

func userLookupError(err error) error {
	if errors.Is(err, repo.ErrUserNotFound) {
		return utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "user not found", nil)
	}
	return utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "user lookup failed", nil)
}
