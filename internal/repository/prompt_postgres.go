package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roeev/docuchat/internal/entity"
)

// PromptRepository defines the interface for turn persistence
type PromptRepository interface {
	CreatePrompt(ctx context.Context, chatID, question, response string) (*entity.Prompt, error)
	ListPromptsByChat(ctx context.Context, chatID string) ([]*entity.Prompt, error)
}

var _ PromptRepository = &PromptPostgres{}

// PromptPostgres implements PromptRepository using PostgreSQL
type PromptPostgres struct {
	db *pgxpool.Pool
}

func NewPromptPostgres(db *pgxpool.Pool) *PromptPostgres {
	return &PromptPostgres{db: db}
}

const createPromptQuery = `
INSERT INTO prompts (id, chat_id, question, response, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
RETURNING id, chat_id, question, response, created_at, updated_at`

func (r *PromptPostgres) CreatePrompt(ctx context.Context, chatID, question, response string) (*entity.Prompt, error) {
	cID, err := uuid.Parse(chatID)
	if err != nil {
		return nil, fmt.Errorf("%w: create prompt: invalid chat ID %q", entity.ErrPersistence, chatID)
	}

	row := r.db.QueryRow(ctx, createPromptQuery, toPgUUID(uuid.New()), toPgUUID(cID), question, response)

	prompt, err := scanPrompt(row)
	if err != nil {
		return nil, wrapWriteError("create prompt", err)
	}

	return prompt, nil
}

const listPromptsQuery = `
SELECT id, chat_id, question, response, created_at, updated_at
FROM prompts
WHERE chat_id = $1
ORDER BY created_at ASC`

func (r *PromptPostgres) ListPromptsByChat(ctx context.Context, chatID string) ([]*entity.Prompt, error) {
	cID, err := uuid.Parse(chatID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chat ID %q", entity.ErrChatNotFound, chatID)
	}

	rows, err := r.db.Query(ctx, listPromptsQuery, toPgUUID(cID))
	if err != nil {
		return nil, fmt.Errorf("%w: list prompts: %v", entity.ErrPersistence, err)
	}
	defer rows.Close()

	prompts := make([]*entity.Prompt, 0)
	for rows.Next() {
		prompt, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan prompt: %v", entity.ErrPersistence, err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list prompts: %v", entity.ErrPersistence, err)
	}

	return prompts, nil
}

func scanPrompt(row pgx.Row) (*entity.Prompt, error) {
	var (
		id        pgtype.UUID
		chatID    pgtype.UUID
		question  string
		response  string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&id, &chatID, &question, &response, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &entity.Prompt{
		ID:        fromPgUUID(id),
		ChatID:    fromPgUUID(chatID),
		Question:  question,
		Response:  response,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}, nil
}
