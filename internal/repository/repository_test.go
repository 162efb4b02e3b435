package repository

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/task-service/internal/models"
	"github.com/sirupsen/logrus"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := Open(context.Background(), DriverSQLite, "file::memory:?_foreign_keys=on", 1, 0, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db)
}

func mustUser(t *testing.T, r *Repository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, PasswordHash: "hash-" + name}
	if err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func mustTask(t *testing.T, r *Repository, title string, owner int64) *models.Task {
	t.Helper()
	task := &models.Task{Title: title, Status: models.StatusNotDone, OwnerID: owner}
	if err := r.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}

func TestRepository_UserCRUD(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	alice := mustUser(t, r, "alice")
	bob := mustUser(t, r, "bob")
	if alice.ID == 0 || bob.ID <= alice.ID {
		t.Fatalf("unexpected ids: alice=%d bob=%d", alice.ID, bob.ID)
	}

	got, err := r.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != alice.ID || got.PasswordHash != "hash-alice" {
		t.Fatalf("got %+v want %+v", got, alice)
	}

	if _, err := r.FindUserByUsername(ctx, "Alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("usernames are case-sensitive: got %v want %v", err, ErrNotFound)
	}

	users, err := r.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("unexpected users: %+v", users)
	}

	bob.Username = "robert"
	if err := r.UpdateUser(ctx, bob); err != nil {
		t.Fatalf("update: %v", err)
	}
	if taken, _ := r.UsernameTaken(ctx, "bob"); taken {
		t.Fatalf("old username still taken")
	}
	if taken, _ := r.UsernameTaken(ctx, "robert"); !taken {
		t.Fatalf("new username not taken")
	}

	if err := r.UpdateUser(ctx, &models.User{ID: 999, Username: "x", PasswordHash: "y"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want %v", err, ErrNotFound)
	}
	if _, err := r.GetUser(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want %v", err, ErrNotFound)
	}
	if ok, _ := r.UserExists(ctx, alice.ID); !ok {
		t.Fatalf("alice should exist")
	}
}

func TestRepository_DuplicateUsernameIsClassified(t *testing.T) {
	r := newTestRepo(t)
	mustUser(t, r, "alice")

	err := r.CreateUser(context.Background(), &models.User{Username: "alice", PasswordHash: "h"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("got %v want %v", err, ErrDuplicate)
	}
}

func TestRepository_TaskRequiresExistingOwner(t *testing.T) {
	r := newTestRepo(t)
	err := r.CreateTask(context.Background(), &models.Task{Title: "T", Status: "x", OwnerID: 42})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("got %v want %v", err, ErrForeignKey)
	}
}

func TestRepository_TaskCRUD(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	alice := mustUser(t, r, "alice")

	first := mustTask(t, r, "first", alice.ID)
	desc := "details"
	second := &models.Task{Title: "second", Description: &desc, Status: "done", OwnerID: alice.ID}
	if err := r.CreateTask(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := r.GetTask(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Description != nil || got.Status != models.StatusNotDone || got.OwnerID != alice.ID {
		t.Fatalf("unexpected task: %+v", got)
	}

	tasks, err := r.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("tasks not ordered by id: %+v", tasks)
	}
	if tasks[1].Description == nil || *tasks[1].Description != "details" {
		t.Fatalf("description lost: %+v", tasks[1])
	}

	got.Title = "renamed"
	if err := r.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := r.GetTask(ctx, first.ID)
	if again.Title != "renamed" {
		t.Fatalf("got title %q want renamed", again.Title)
	}

	if err := r.DeleteTask(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.DeleteTask(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want %v", err, ErrNotFound)
	}
	if _, err := r.GetTask(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v want %v", err, ErrNotFound)
	}
}

func TestRepository_DeleteUserCascadesOnlyOwnedTasks(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	alice := mustUser(t, r, "alice")
	bob := mustUser(t, r, "bob")
	mustTask(t, r, "a1", alice.ID)
	mustTask(t, r, "a2", alice.ID)
	kept := mustTask(t, r, "b1", bob.ID)

	if err := r.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks, err := r.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != kept.ID {
		t.Fatalf("unexpected remaining tasks: %+v", tasks)
	}
	owned, _ := r.ListTasksByOwner(ctx, alice.ID)
	if len(owned) != 0 {
		t.Fatalf("alice still owns %d tasks", len(owned))
	}
}

func TestRepository_WithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	boom := errors.New("boom")

	err := r.WithTx(ctx, func(tx *Repository) error {
		if err := tx.CreateUser(ctx, &models.User{Username: "ghost", PasswordHash: "h"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v want %v", err, boom)
	}
	if taken, _ := r.UsernameTaken(ctx, "ghost"); taken {
		t.Fatalf("rolled back insert is visible")
	}

	err = r.WithTx(ctx, func(tx *Repository) error {
		return tx.CreateUser(ctx, &models.User{Username: "kept", PasswordHash: "h"})
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if taken, _ := r.UsernameTaken(ctx, "kept"); !taken {
		t.Fatalf("committed insert is missing")
	}
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	if _, err := Open(context.Background(), "mysql", "x", 1, 0, log); err == nil {
		t.Fatalf("expected error")
	}
}

var _ querier = (*sql.Tx)(nil)
