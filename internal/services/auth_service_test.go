package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/auth"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/config"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo/memory"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/services"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		PasswordMinLen: 6,
	}
}

func newAuthService() (*services.AuthService, *memory.UserRepo) {
	users, _ := memory.NewStores()
	tokens := auth.NewManager("test-secret", time.Hour)
	return services.NewAuthService(users, tokens, testConfig()), users
}

func appErr(t *testing.T, err error) *utils.AppError {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected *utils.AppError, got %T: %v", err, err)
	}
	return appErr
}

func TestRegisterForcesUserRole(t *testing.T) {
	svc, _ := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("Register returned an empty token")
	}
	if result.User.Role != models.RoleUser {
		t.Errorf("new user role = %q, want %q", result.User.Role, models.RoleUser)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	stored, err := users.GetByID(context.Background(), result.User.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not verify against the password: %v", err)
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "  Alice@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased trimmed form", result.User.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "secret1"},
		{"short password", "alice@example.com", "abc"},
		{"both invalid", "nope", "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), "", tc.email, tc.password)
			ae := appErr(t, err)
			if ae.Status != http.StatusBadRequest || ae.Code != "VALIDATION_ERROR" {
				t.Errorf("got status %d code %q, want 400 VALIDATION_ERROR", ae.Status, ae.Code)
			}
			if ae.Details == nil {
				t.Error("validation error carries no field details")
			}
		})
	}
}

func TestRegisterTrimsNameBeforeLengthCheck(t *testing.T) {
	svc, _ := newAuthService()

	for _, name := range []string{" a", "a ", "\tz\n"} {
		_, err := svc.Register(context.Background(), name, "padded@example.com", "secret1")
		ae := appErr(t, err)
		if ae.Status != http.StatusBadRequest || ae.Code != "VALIDATION_ERROR" {
			t.Errorf("name %q: got status %d code %q, want 400 VALIDATION_ERROR", name, ae.Status, ae.Code)
		}
	}

	result, err := svc.Register(context.Background(), "  Bo  ", "bo@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if result.User.Name != "Bo" {
		t.Errorf("name = %q, want trimmed %q", result.User.Name, "Bo")
	}
}

func TestRegisterAllowsEmptyName(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), "   ", "anon@example.com", "secret1"); err != nil {
		t.Fatalf("Register with blank name returned error: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	_, err := svc.Register(context.Background(), "Mallory", "alice@example.com", "secret2")
	ae := appErr(t, err)
	if ae.Status != http.StatusBadRequest || ae.Code != "EMAIL_TAKEN" {
		t.Errorf("got status %d code %q, want 400 EMAIL_TAKEN", ae.Status, ae.Code)
	}
}

// A wrong password and an unknown email must be indistinguishable to
// the caller.
func TestLoginFailuresAreGeneric(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	wrongPassword := appErr(t, errOf(svc.Login(context.Background(), "alice@example.com", "wrong")))
	unknownEmail := appErr(t, errOf(svc.Login(context.Background(), "nobody@example.com", "secret1")))

	if wrongPassword.Status != http.StatusUnauthorized || unknownEmail.Status != http.StatusUnauthorized {
		t.Errorf("statuses %d/%d, want both 401", wrongPassword.Status, unknownEmail.Status)
	}
	if wrongPassword.Message != unknownEmail.Message || wrongPassword.Code != unknownEmail.Code {
		t.Errorf("login failures differ: %q/%q vs %q/%q",
			wrongPassword.Code, wrongPassword.Message, unknownEmail.Code, unknownEmail.Message)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthService()

	if _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Error("Login returned an empty token")
	}
	if result.User.Email != "alice@example.com" {
		t.Errorf("login user email = %q", result.User.Email)
	}
}

func TestUpdateProfileRejectsPasswordAndRole(t *testing.T) {
	svc, users := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	caller, _ := users.GetByID(context.Background(), result.User.ID)

	password := "sneaky"
	role := models.RoleAdmin

	for name, update := range map[string]services.ProfileUpdate{
		"password": {Password: &password},
		"role":     {Role: &role},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), caller, update)
			ae := appErr(t, err)
			if ae.Status != http.StatusBadRequest {
				t.Errorf("got status %d, want 400", ae.Status)
			}
		})
	}
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	svc, users := newAuthService()

	if _, err := svc.Register(context.Background(), "Bob", "bob@example.com", "secret1"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	caller, _ := users.GetByID(context.Background(), result.User.ID)

	taken := "bob@example.com"
	_, err = svc.UpdateProfile(context.Background(), caller, services.ProfileUpdate{Email: &taken})
	ae := appErr(t, err)
	if ae.Status != http.StatusBadRequest || ae.Code != "EMAIL_TAKEN" {
		t.Errorf("got status %d code %q, want 400 EMAIL_TAKEN", ae.Status, ae.Code)
	}
}

func TestUpdateProfileChangesNameAndEmail(t *testing.T) {
	svc, users := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	caller, _ := users.GetByID(context.Background(), result.User.ID)

	name := "Alicia"
	email := "alicia@example.com"
	updated, err := svc.UpdateProfile(context.Background(), caller, services.ProfileUpdate{Name: &name, Email: &email})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != "Alicia" || updated.Email != "alicia@example.com" {
		t.Errorf("updated profile = %q/%q", updated.Name, updated.Email)
	}
}

func TestChangePassword(t *testing.T) {
	svc, users := newAuthService()

	result, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	caller, _ := users.GetByID(context.Background(), result.User.ID)

	err = svc.ChangePassword(context.Background(), caller, "wrong", "newsecret")
	ae := appErr(t, err)
	if ae.Status != http.StatusUnauthorized || ae.Code != "INVALID_CREDENTIALS" {
		t.Errorf("wrong current password: got %d %q, want 401 INVALID_CREDENTIALS", ae.Status, ae.Code)
	}

	if err := svc.ChangePassword(context.Background(), caller, "secret1", "short"); err == nil {
		t.Error("short new password accepted")
	}

	if err := svc.ChangePassword(context.Background(), caller, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "newsecret"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice@example.com", "secret1"); err == nil {
		t.Error("login with old password still works")
	}
}

func errOf(_ *services.AuthResult, err error) error {
	return err
}
