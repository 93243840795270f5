package chat

import (
	"context"

	"github.com/roeev/docuchat/internal/entity"
)

type ChatUsecase interface {
	NewChat(ctx context.Context, req *entity.AskRequest) (*entity.AskResult, error)
	ContinueChat(ctx context.Context, chatID string, req *entity.AskRequest) (*entity.AskResult, error)
	ListChats(ctx context.Context) ([]*entity.Chat, error)
	GetChat(ctx context.Context, id string) (*entity.Chat, error)
	ListPrompts(ctx context.Context, chatID string) ([]*entity.Prompt, error)
	GetTranscript(ctx context.Context, chatID string) (*entity.Chat, []*entity.Prompt, error)
}
