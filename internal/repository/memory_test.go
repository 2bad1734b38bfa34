package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/message-board/internal/domain"
	"github.com/spec-kit/message-board/internal/repository"
)

func TestMemoryMessageRepository_SequentialIDs(t *testing.T) {
	repo := repository.NewMemoryMessageRepository()
	ctx := context.Background()

	for i, content := range []string{"first", "second", "third"} {
		msg := &domain.Message{Content: content, Author: "testuser"}
		if err := repo.Create(ctx, msg); err != nil {
			t.Fatalf("Create(%q) failed: %v", content, err)
		}
		if want := int64(i + 1); msg.ID != want {
			t.Errorf("Create(%q) id = %d, want %d", content, msg.ID, want)
		}
		if msg.Timestamp.IsZero() {
			t.Errorf("Create(%q) did not stamp timestamp", content)
		}
	}

	messages, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("List() returned %d messages, want 3", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].ID <= messages[i-1].ID {
			t.Errorf("ids not increasing: %d then %d", messages[i-1].ID, messages[i].ID)
		}
	}
}

func TestMemoryMessageRepository_GetAndDelete(t *testing.T) {
	repo := repository.NewMemoryMessageRepository()
	ctx := context.Background()

	msg := &domain.Message{Content: "hello", Author: "testuser"}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.Content != "hello" || got.Author != "testuser" {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("GetByID(absent) error = %v, want pgx.ErrNoRows", err)
	}

	if err := repo.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, msg.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("GetByID(deleted) error = %v, want pgx.ErrNoRows", err)
	}
	if err := repo.Delete(ctx, msg.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("Delete(deleted) error = %v, want pgx.ErrNoRows", err)
	}
}

func TestMemoryUserRepository(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	ctx := context.Background()

	user := &domain.User{Username: "testuser", PasswordHash: "hash", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Create() did not assign an id")
	}

	if err := repo.Create(ctx, &domain.User{Username: "testuser"}); !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Errorf("Create(duplicate) error = %v, want ErrDuplicateUsername", err)
	}

	got, err := repo.GetByUsername(ctx, "testuser")
	if err != nil {
		t.Fatalf("GetByUsername() failed: %v", err)
	}
	if got.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", got.Role, domain.RoleUser)
	}

	if _, err := repo.GetByUsername(ctx, "ghost"); !errors.Is(err, pgx.ErrNoRows) {
		t.Errorf("GetByUsername(absent) error = %v, want pgx.ErrNoRows", err)
	}
}
