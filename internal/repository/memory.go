package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/message-board/internal/domain"
)

// In-memory implementations used when no POSTGRES_DSN is configured, and by
// tests. Absent rows are reported as pgx.ErrNoRows so the error mapping stays
// identical across both backends.

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository returns an in-process user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]domain.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return ErrDuplicateUsername
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	r.users[user.Username] = *user
	return nil
}

func (r *memoryUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

type memoryMessageRepository struct {
	mu       sync.RWMutex
	nextID   int64
	messages []domain.Message
}

// NewMemoryMessageRepository returns an in-process append-only message store.
func NewMemoryMessageRepository() MessageRepository {
	return &memoryMessageRepository{nextID: 1}
}

func (r *memoryMessageRepository) Create(_ context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = r.nextID
	message.Timestamp = time.Now()
	r.nextID++
	r.messages = append(r.messages, *message)
	return nil
}

func (r *memoryMessageRepository) List(_ context.Context) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

func (r *memoryMessageRepository) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			msg := r.messages[i]
			return &msg, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryMessageRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}
