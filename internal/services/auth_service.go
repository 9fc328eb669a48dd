package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/auth"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/config"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

type AuthService struct {
	users  UserStore
	tokens *auth.Manager
	cfg    *config.Config
}

type AuthResult struct {
	Token string             `json:"token"`
	User  *models.PublicUser `json:"user"`
}

// ProfileUpdate is the full shape of a profile-update request. Password
// and role are bound only so the service can reject attempts to change
// them through this path.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func NewAuthService(users UserStore, tokens *auth.Manager, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if details := s.validateRegistration(name, email, password); details != nil {
		return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", details)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not secure password", nil)
	}

	// Role is always forced to "user" here; the admin role-change
	// operation is the only way to promote an account.
	user, err := s.users.Create(ctx, name, email, string(hash), models.RoleUser)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, utils.NewAppError(http.StatusBadRequest, "EMAIL_TAKEN", "this email is already registered", nil)
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not create user", nil)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not generate token", nil)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login deliberately returns the same error for an unknown email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, invalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not generate token", nil)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller *models.User, update ProfileUpdate) (*models.PublicUser, error) {
	if update.Password != nil || update.Role != nil {
		return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR",
			"this route cannot change the password or the role", nil)
	}

	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if utf8.RuneCountInString(trimmed) < 2 {
			return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request",
				fieldErrors("name", "name must be at least 2 characters"))
		}
		update.Name = &trimmed
	}

	if update.Email != nil {
		normalized := normalizeEmail(*update.Email)
		if !models.ValidEmail(normalized) {
			return nil, utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request",
				fieldErrors("email", "email must be a valid email address"))
		}
		if normalized != caller.Email {
			taken, err := s.users.ExistsByEmail(ctx, normalized)
			if err != nil {
				return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not update profile", nil)
			}
			if taken {
				return nil, utils.NewAppError(http.StatusBadRequest, "EMAIL_TAKEN", "this email is already in use", nil)
			}
		}
		update.Email = &normalized
	}

	user, err := s.users.UpdateProfile(ctx, caller.ID, update.Name, update.Email)
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, utils.NewAppError(http.StatusBadRequest, "EMAIL_TAKEN", "this email is already in use", nil)
		}
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "user not found", nil)
		}
		return nil, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not update profile", nil)
	}

	return user.Public(), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, caller *models.User, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(currentPassword)); err != nil {
		return utils.NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "current password is incorrect", nil)
	}

	if utf8.RuneCountInString(newPassword) < s.cfg.PasswordMinLen {
		return utils.NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", "invalid request",
			fieldErrors("newPassword", fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLen)))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not update password", nil)
	}

	if err := s.users.UpdatePassword(ctx, caller.ID, string(hash)); err != nil {
		return utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not update password", nil)
	}

	return nil
}

// validateRegistration expects name and email already trimmed.
func (s *AuthService) validateRegistration(name, email, password string) []map[string]string {
	var details []map[string]string
	if name != "" && utf8.RuneCountInString(name) < 2 {
		details = append(details, map[string]string{"name": "name must be at least 2 characters"})
	}
	if !models.ValidEmail(email) {
		details = append(details, map[string]string{"email": "email must be a valid email address"})
	}
	if utf8.RuneCountInString(password) < s.cfg.PasswordMinLen {
		details = append(details, map[string]string{
			"password": fmt.Sprintf("password must be at least %d characters", s.cfg.PasswordMinLen),
		})
	}
	return details
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalidCredentials() *utils.AppError {
	return utils.NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password", nil)
}

func fieldErrors(field, message string) []map[string]string {
	return []map[string]string{{field: message}}
}
