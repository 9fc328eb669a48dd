package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jasonokoro10/Gestor-de-Tasques/internal/models"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/repo/memory"
	"github.com/jasonokoro10/Gestor-de-Tasques/internal/services"
)

func newAdminFixture(t *testing.T) (*services.AdminService, *services.TaskService, *memory.UserRepo, *models.User, *models.User) {
	t.Helper()

	users, tasks := memory.NewStores()
	admin, err := users.Create(context.Background(), "Root", "root@example.com", "hash", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	alice, err := users.Create(context.Background(), "Alice", "alice@example.com", "hash", models.RoleUser)
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}

	return services.NewAdminService(users, tasks), services.NewTaskService(tasks), users, admin, alice
}

func TestListUsersNewestFirstWithoutHashes(t *testing.T) {
	adminSvc, _, _, _, alice := newAdminFixture(t)

	users, err := adminSvc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	// alice was created after the admin
	if users[0].ID != alice.ID {
		t.Errorf("first listed user = %q, want newest %q", users[0].ID, alice.ID)
	}
}

func TestDeleteUserCascadesToTasks(t *testing.T) {
	adminSvc, taskSvc, _, admin, alice := newAdminFixture(t)

	for _, title := range []string{"One", "Two"} {
		if _, err := taskSvc.Create(context.Background(), alice, services.TaskInput{Title: title, Description: "d"}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	if err := adminSvc.DeleteUser(context.Background(), admin, alice.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	all, err := adminSvc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	for _, task := range all {
		if task.OwnerID == alice.ID {
			t.Errorf("task %q still present after owner deletion", task.Title)
		}
	}

	users, err := adminSvc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("got %d users after deletion, want 1", len(users))
	}
}

func TestDeleteUserSelfForbidden(t *testing.T) {
	adminSvc, _, users, admin, _ := newAdminFixture(t)

	err := adminSvc.DeleteUser(context.Background(), admin, admin.ID)
	ae := appErr(t, err)
	if ae.Status != http.StatusBadRequest || ae.Code != "SELF_DELETION_FORBIDDEN" {
		t.Errorf("got %d %q, want 400 SELF_DELETION_FORBIDDEN", ae.Status, ae.Code)
	}

	if _, err := users.GetByID(context.Background(), admin.ID); err != nil {
		t.Error("admin account was removed by a rejected self-deletion")
	}
}

func TestDeleteUserNotFoundTwice(t *testing.T) {
	adminSvc, _, _, admin, alice := newAdminFixture(t)

	if err := adminSvc.DeleteUser(context.Background(), admin, alice.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		err := adminSvc.DeleteUser(context.Background(), admin, alice.ID)
		ae := appErr(t, err)
		if ae.Status != http.StatusNotFound {
			t.Errorf("repeat delete #%d: got status %d, want 404", i+1, ae.Status)
		}
	}
}

func TestChangeUserRole(t *testing.T) {
	adminSvc, _, _, admin, alice := newAdminFixture(t)

	updated, err := adminSvc.ChangeUserRole(context.Background(), admin, alice.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("ChangeUserRole returned error: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", updated.Role)
	}
}

func TestChangeUserRoleRejectsInvalidRole(t *testing.T) {
	adminSvc, _, _, admin, alice := newAdminFixture(t)

	_, err := adminSvc.ChangeUserRole(context.Background(), admin, alice.ID, "superuser")
	ae := appErr(t, err)
	if ae.Status != http.StatusBadRequest || ae.Code != "VALIDATION_ERROR" {
		t.Errorf("got %d %q, want 400 VALIDATION_ERROR", ae.Status, ae.Code)
	}
}

func TestChangeUserRoleSelfForbidden(t *testing.T) {
	adminSvc, _, users, admin, _ := newAdminFixture(t)

	_, err := adminSvc.ChangeUserRole(context.Background(), admin, admin.ID, models.RoleUser)
	ae := appErr(t, err)
	if ae.Status != http.StatusBadRequest || ae.Code != "SELF_ROLE_CHANGE_FORBIDDEN" {
		t.Errorf("got %d %q, want 400 SELF_ROLE_CHANGE_FORBIDDEN", ae.Status, ae.Code)
	}

	stored, err := users.GetByID(context.Background(), admin.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Role != models.RoleAdmin {
		t.Errorf("admin role changed to %q by a rejected self-change", stored.Role)
	}
}

func TestChangeUserRoleUnknownTarget(t *testing.T) {
	adminSvc, _, _, admin, _ := newAdminFixture(t)

	_, err := adminSvc.ChangeUserRole(context.Background(), admin, "no-such-user", models.RoleAdmin)
	ae := appErr(t, err)
	if ae.Status != http.StatusNotFound {
		t.Errorf("got status %d, want 404", ae.Status)
	}
}

func TestListTasksIncludesOwnerSummary(t *testing.T) {
	adminSvc, taskSvc, _, _, alice := newAdminFixture(t)

	if _, err := taskSvc.Create(context.Background(), alice, services.TaskInput{Title: "Owned", Description: "d"}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	all, err := adminSvc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d tasks, want 1", len(all))
	}
	owner := all[0].Owner
	if owner.Email != "alice@example.com" || owner.Name != "Alice" || owner.Role != models.RoleUser {
		t.Errorf("owner summary = %+v", owner)
	}
}
