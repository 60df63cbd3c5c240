//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/testutil"
)

// newUserTestEnv connects to the database named by TEST_DATABASE_URL,
// serializes against other DB tests and resets the users schema.
func newUserTestEnv(t *testing.T) (context.Context, *Repository) {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire DB lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release DB lock: %v", err)
		}
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, repo
}

func TestIntegrationUserRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	created, err := repo.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a store-assigned ID")
	}

	byID, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("username mismatch: got %q", byID.Username)
	}

	byName, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != created.ID {
		t.Errorf("ID mismatch: got %d, want %d", byName.ID, created.ID)
	}
}

func TestIntegrationUserRepository_CreateDuplicate(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	if _, err := repo.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("CreateUser (first) failed: %v", err)
	}

	// The unique constraint, not the application pre-check, must reject this.
	_, err := repo.CreateUser(ctx, "alice")
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestIntegrationUserRepository_GetMissing(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	if _, err := repo.GetUserByID(ctx, 365); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByID: expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUserByUsername: expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationUserRepository_Update(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	created, err := repo.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	updated, err := repo.UpdateUser(ctx, &model.User{ID: created.ID, Username: "bob"})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Username != "bob" {
		t.Errorf("username mismatch: got %q", updated.Username)
	}

	_, err = repo.UpdateUser(ctx, &model.User{ID: 365, Username: "carol"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIntegrationUserRepository_UpdateDuplicate(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	if _, err := repo.CreateUser(ctx, "alice"); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	second, err := repo.CreateUser(ctx, "bob")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	_, err = repo.UpdateUser(ctx, &model.User{ID: second.ID, Username: "alice"})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("expected ErrUsernameExists, got %v", err)
	}
}

func TestIntegrationUserRepository_Delete(t *testing.T) {
	ctx, repo := newUserTestEnv(t)

	created, err := repo.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := repo.GetUserByID(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}

	if err := repo.DeleteUser(ctx, created.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
