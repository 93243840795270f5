package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/roeev/docuchat/internal/entity"
	"github.com/roeev/docuchat/internal/repository"
	"go.uber.org/zap"
)

const (
	chatCacheExpiration = 5 * time.Minute
	chatCacheCleanup    = 10 * time.Minute
)

// ChatUsecase implements the request pipeline: normalize the upload,
// build the prompt, run serialized inference and record the turn, with
// the transient upload removed on every path.
type ChatUsecase struct {
	chatRepo   repository.ChatRepository
	promptRepo repository.PromptRepository
	normalizer Normalizer
	prompts    PromptBuilder
	gateway    InferenceGateway
	chatCache  *gocache.Cache
	logger     *zap.Logger
}

// NewUsecase creates a new chat use case
func NewUsecase(
	chatRepo repository.ChatRepository,
	promptRepo repository.PromptRepository,
	normalizer Normalizer,
	prompts PromptBuilder,
	gateway InferenceGateway,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		chatRepo:   chatRepo,
		promptRepo: promptRepo,
		normalizer: normalizer,
		prompts:    prompts,
		gateway:    gateway,
		chatCache:  gocache.New(chatCacheExpiration, chatCacheCleanup),
		logger:     logger,
	}
}

// NewChat creates a chat titled with the question and then runs the
// pipeline against it. The chat row is written before inference runs:
// if inference fails the chat remains with zero turns. That ordering
// matches the persisted contract of this API and must not be reordered
// into a transaction.
func (uc *ChatUsecase) NewChat(ctx context.Context, req *entity.AskRequest) (*entity.AskResult, error) {
	chat, err := uc.chatRepo.CreateChat(ctx, req.Question)
	if err != nil {
		// The upload is still ours to clean up.
		if req.Upload != nil {
			uc.removeUpload(ctx, req.Upload)
		}
		return nil, fmt.Errorf("create chat: %w", err)
	}

	uc.chatCache.Set(chat.ID, chat, gocache.DefaultExpiration)

	ctxzap.Info(ctx, "chat created", zap.String("chat_id", chat.ID))

	return uc.run(ctx, chat.ID, req)
}

// ContinueChat runs the pipeline against an existing chat id. The id is
// not verified up front; recording the turn fails with a persistence
// error when the chat does not exist.
func (uc *ChatUsecase) ContinueChat(ctx context.Context, chatID string, req *entity.AskRequest) (*entity.AskResult, error) {
	return uc.run(ctx, chatID, req)
}

// run is the shared pipeline core. The deferred removal covers every
// exit path; a removal failure is logged and never affects the
// response.
func (uc *ChatUsecase) run(ctx context.Context, chatID string, req *entity.AskRequest) (*entity.AskResult, error) {
	if req.Upload != nil {
		defer uc.removeUpload(ctx, req.Upload)
	}

	fileText := ""
	if req.Upload != nil {
		text, err := uc.normalizer.Normalize(req.Upload.Path, req.Upload.Extension)
		if err != nil {
			// Inference is never attempted for an unreadable file.
			return nil, fmt.Errorf("normalize upload: %w", err)
		}
		fileText = text

		ctxzap.Info(ctx, "upload normalized",
			zap.String("filename", req.Upload.Filename),
			zap.String("extension", req.Upload.Extension),
			zap.Int("text_length", len(fileText)),
		)
	}

	promptText := uc.prompts.Build(req.Question, fileText)

	responseText, err := uc.gateway.Infer(ctx, promptText, req.Params)
	if err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}

	if _, err := uc.promptRepo.CreatePrompt(ctx, chatID, req.Question, responseText); err != nil {
		return nil, fmt.Errorf("record turn: %w", err)
	}

	ctxzap.Info(ctx, "turn recorded", zap.String("chat_id", chatID))

	return &entity.AskResult{
		ChatID:   chatID,
		Response: responseText,
	}, nil
}

// ListChats returns all chat sessions.
func (uc *ChatUsecase) ListChats(ctx context.Context) ([]*entity.Chat, error) {
	return uc.chatRepo.ListChats(ctx)
}

// GetChat returns a single chat. Chats are immutable after creation, so
// reads are memoized.
func (uc *ChatUsecase) GetChat(ctx context.Context, id string) (*entity.Chat, error) {
	if cached, ok := uc.chatCache.Get(id); ok {
		return cached.(*entity.Chat), nil
	}

	chat, err := uc.chatRepo.GetChatByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.chatCache.Set(chat.ID, chat, gocache.DefaultExpiration)

	return chat, nil
}

// ListPrompts returns the turns of one chat in creation order.
func (uc *ChatUsecase) ListPrompts(ctx context.Context, chatID string) ([]*entity.Prompt, error) {
	return uc.promptRepo.ListPromptsByChat(ctx, chatID)
}

// GetTranscript returns a chat together with its turns for export.
func (uc *ChatUsecase) GetTranscript(ctx context.Context, chatID string) (*entity.Chat, []*entity.Prompt, error) {
	chat, err := uc.GetChat(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}

	prompts, err := uc.promptRepo.ListPromptsByChat(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}

	return chat, prompts, nil
}
