package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
	"github.com/sitecrew/workforce-scheduler/internal/core/ports"
)

func TestUserService_Update_Partial(t *testing.T) {
	f := newFixture(crew(), nil)
	svc := f.userService()

	role := domain.RoleSupervisor
	u, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Role: &role, ActorID: "admin"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Role != domain.RoleSupervisor || u.FirstName != "Jean" || u.Status != domain.StatusPresent {
		t.Fatalf("unexpected user: %+v", u)
	}
	if stored, _ := f.users.FindByID(context.Background(), "u1"); stored.Role != domain.RoleSupervisor {
		t.Fatalf("update not persisted: %+v", stored)
	}
}

func TestUserService_Update_RefreshesSessionRole(t *testing.T) {
	f := newFixture(crew(), nil)
	svc := f.userService()
	sess, err := f.sessions.Open(context.Background(), crew()[0])
	if err != nil {
		t.Fatalf("open session: %v", err)
	}

	role := domain.RoleAdmin
	if _, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Role: &role}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := f.sessions.Lookup(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Role != domain.RoleAdmin {
		t.Fatalf("session role not refreshed: %s", got.Role)
	}
}

func TestUserService_Update_Invalid(t *testing.T) {
	f := newFixture(crew(), nil)
	svc := f.userService()

	role := domain.Role("boss")
	if _, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Role: &role}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	empty := "  "
	if _, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{FirstName: &empty}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "ghost", ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_TogglePresence(t *testing.T) {
	f := newFixture(crew(), nil)
	svc := f.userService()

	u, err := svc.TogglePresence(context.Background(), "u1", "admin")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if u.Status != domain.StatusAbsent {
		t.Fatalf("expected absent, got %s", u.Status)
	}
	u, _ = svc.TogglePresence(context.Background(), "u1", "admin")
	if u.Status != domain.StatusPresent {
		t.Fatalf("expected present, got %s", u.Status)
	}
}

func TestUserService_Delete(t *testing.T) {
	f := newFixture(crew(), sites())
	f.seed("u1", "p1", "2024-03-10", "2024-03-11")
	f.seed("u2", "p1", "2024-03-10")
	svc := f.userService()
	sess, _ := f.sessions.Open(context.Background(), crew()[0])

	if err := svc.Delete(context.Background(), "u1", "admin"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.users.FindByID(context.Background(), "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present: %v", err)
	}
	if len(f.assignments.rows) != 1 || f.assignments.rows[0].UserID != "u2" {
		t.Fatalf("assignments not cascaded: %+v", f.assignments.rows)
	}
	if _, err := f.sessions.Lookup(context.Background(), sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("session not revoked: %v", err)
	}
}

func TestUserService_Delete_Self(t *testing.T) {
	f := newFixture(crew(), nil)
	if err := f.userService().Delete(context.Background(), "admin", "admin"); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
}

func TestUserService_Available(t *testing.T) {
	f := newFixture(crew(), sites())
	f.seed("u1", "p1", "2024-03-10")
	svc := f.userService()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// default status filter is present, ordered by first name
	users, err := svc.Available(context.Background(), ports.AvailableUsersInput{Role: "all"})
	if err != nil {
		t.Fatalf("available: %v", err)
	}
	want := []string{"admin", "u1", "u2"}
	if len(users) != len(want) {
		t.Fatalf("expected %v, got %+v", want, users)
	}
	for i, id := range want {
		if users[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, users[i].ID)
		}
	}

	users, _ = svc.Available(context.Background(), ports.AvailableUsersInput{
		Role: "worker", Status: "all", Date: day, ExcludeAssigned: true,
	})
	if len(users) != 1 || users[0].ID != "u3" {
		t.Fatalf("expected only u3, got %+v", users)
	}

	users, _ = svc.Available(context.Background(), ports.AvailableUsersInput{Search: "MAR", Status: "all"})
	if len(users) != 2 {
		t.Fatalf("expected Marie and Martin, got %+v", users)
	}
}
