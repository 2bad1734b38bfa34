package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/message-board/internal/domain"
)

// MessageRepository defines persistence access for board messages. Identifiers
// are assigned by the store and increase monotonically in insertion order.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (content, author)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.Content,
		message.Author,
	).Scan(&message.ID, &message.Timestamp)
}

func (r *messageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const query = `
        SELECT id, content, author, created_at
        FROM messages ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Content, &msg.Author, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	const query = `
        SELECT id, content, author, created_at
        FROM messages WHERE id=$1`

	var msg domain.Message
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&msg.ID,
		&msg.Content,
		&msg.Author,
		&msg.Timestamp,
	); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM messages WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
