package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sitecrew/workforce-scheduler/internal/core/domain"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession(id string) domain.Session {
	return domain.Session{ID: id, UserID: "u-1", Role: domain.RoleAdmin}
}

func TestSessionStore_SaveSetsIndexTTL(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("s-1"), time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := mr.TTL(userSessionsKey("u-1")); got != time.Hour {
		t.Errorf("index ttl = %v, want 1h", got)
	}
}

func TestSessionStore_ShorterResaveKeepsIndexAlive(t *testing.T) {
	store, mr := newTestSessionStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("new"), 24*time.Hour); err != nil {
		t.Fatalf("Save new: %v", err)
	}
	// An older session refreshed afterwards has less time left.
	if err := store.Save(ctx, testSession("old"), 3*time.Hour); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if got := mr.TTL(userSessionsKey("u-1")); got != 24*time.Hour {
		t.Errorf("index ttl = %v, want 24h", got)
	}

	mr.FastForward(4 * time.Hour)

	sessions, err := store.ListByUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "new" {
		t.Fatalf("sessions = %+v, want only %q", sessions, "new")
	}

	if err := store.DeleteByUser(ctx, "u-1"); err != nil {
		t.Fatalf("DeleteByUser: %v", err)
	}
	if _, err := store.Get(ctx, "new"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get after revoke: err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_DeleteRemovesFromIndex(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	for _, id := range []string{"s-1", "s-2"} {
		if err := store.Save(ctx, testSession(id), time.Hour); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}
	if err := store.Delete(ctx, "s-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete unknown id: %v", err)
	}

	sessions, err := store.ListByUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s-2" {
		t.Errorf("sessions = %+v, want only s-2", sessions)
	}
	if _, err := store.Get(ctx, "s-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get deleted: err = %v, want ErrSessionNotFound", err)
	}
}
