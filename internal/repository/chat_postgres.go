package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roeev/docuchat/internal/entity"
)

// ChatRepository defines the interface for chat persistence
type ChatRepository interface {
	CreateChat(ctx context.Context, title string) (*entity.Chat, error)
	GetChatByID(ctx context.Context, id string) (*entity.Chat, error)
	ListChats(ctx context.Context) ([]*entity.Chat, error)
}

var _ ChatRepository = &ChatPostgres{}

// ChatPostgres implements ChatRepository using PostgreSQL
type ChatPostgres struct {
	db *pgxpool.Pool
}

func NewChatPostgres(db *pgxpool.Pool) *ChatPostgres {
	return &ChatPostgres{db: db}
}

const createChatQuery = `
INSERT INTO chats (id, title, created_at, updated_at)
VALUES ($1, $2, now(), now())
RETURNING id, title, created_at, updated_at`

func (r *ChatPostgres) CreateChat(ctx context.Context, title string) (*entity.Chat, error) {
	id := uuid.New()

	row := r.db.QueryRow(ctx, createChatQuery, toPgUUID(id), title)

	chat, err := scanChat(row)
	if err != nil {
		return nil, wrapWriteError("create chat", err)
	}

	return chat, nil
}

const getChatQuery = `
SELECT id, title, created_at, updated_at
FROM chats
WHERE id = $1`

func (r *ChatPostgres) GetChatByID(ctx context.Context, id string) (*entity.Chat, error) {
	chatID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid chat ID %q", entity.ErrChatNotFound, id)
	}

	row := r.db.QueryRow(ctx, getChatQuery, toPgUUID(chatID))

	chat, err := scanChat(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", entity.ErrChatNotFound, id)
		}
		return nil, fmt.Errorf("%w: get chat: %v", entity.ErrPersistence, err)
	}

	return chat, nil
}

const listChatsQuery = `
SELECT id, title, created_at, updated_at
FROM chats
ORDER BY created_at DESC`

func (r *ChatPostgres) ListChats(ctx context.Context) ([]*entity.Chat, error) {
	rows, err := r.db.Query(ctx, listChatsQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: list chats: %v", entity.ErrPersistence, err)
	}
	defer rows.Close()

	chats := make([]*entity.Chat, 0)
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan chat: %v", entity.ErrPersistence, err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list chats: %v", entity.ErrPersistence, err)
	}

	return chats, nil
}

func scanChat(row pgx.Row) (*entity.Chat, error) {
	var (
		id        pgtype.UUID
		title     string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&id, &title, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &entity.Chat{
		ID:        fromPgUUID(id),
		Title:     title,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}, nil
}
