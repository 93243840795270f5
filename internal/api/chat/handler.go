package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/entity"
	"github.com/roeev/docuchat/internal/pkg/formatter"
	"github.com/roeev/docuchat/internal/pkg/logger"
	"github.com/roeev/docuchat/internal/pkg/response"
	"github.com/roeev/docuchat/internal/pkg/validator"
	"go.uber.org/zap"
)

const promptCreatedMessage = "Prompt created successfully"

type Handler struct {
	usecase   ChatUsecase
	cfg       config.FileUploadConfig
	validator *validator.Validator
	exporters *formatter.Factory
}

func NewHandler(
	usecase ChatUsecase,
	cfg config.FileUploadConfig,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		cfg:       cfg,
		validator: validator,
		exporters: formatter.NewFactory(),
	}
}

// ListChats handles GET /chat
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListChats")

	chats, err := h.usecase.ListChats(ctx)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "Error listing chats", err)
		return
	}

	response.Success(w, entity.ChatsResponse{Chats: chats})
}

// GetChat handles GET /chat/{id}. An unknown id yields a 200 with a
// null chat, which is what the original API promised its clients.
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("chat_id", chatID),
		zap.String("action", "GetChat"),
	)

	chat, err := h.usecase.GetChat(ctx, chatID)
	if err != nil {
		if errors.Is(err, entity.ErrChatNotFound) {
			response.Success(w, entity.ChatResponse{Chat: nil})
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, "Error fetching chat", err)
		return
	}

	response.Success(w, entity.ChatResponse{Chat: chat})
}

// ListPrompts handles GET /prompts/{chatId}
func (h *Handler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	ctx := logger.AddFields(r.Context(),
		zap.String("chat_id", chatID),
		zap.String("action", "ListPrompts"),
	)

	prompts, err := h.usecase.ListPrompts(ctx, chatID)
	if err != nil {
		if errors.Is(err, entity.ErrChatNotFound) {
			h.respondError(ctx, w, http.StatusBadRequest, "Invalid chat id", err)
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, "Error listing prompts", err)
		return
	}

	response.Success(w, entity.PromptsResponse{Prompts: prompts})
}

// CreateChat handles POST /chat: creates a new chat session from the
// question and runs the pipeline against it.
func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateChat")

	req, ok := h.decodeAskRequest(ctx, w, r)
	if !ok {
		return
	}

	result, err := h.usecase.NewChat(ctx, req)
	if err != nil {
		h.handlePipelineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "chat created and turn recorded", zap.String("chat_id", result.ChatID))

	response.Success(w, entity.AskResponse{
		Message:  promptCreatedMessage,
		Response: result.Response,
		ChatID:   result.ChatID,
	})
}

// ContinuePrompt handles POST /prompt/{chatId}: runs the pipeline
// against an existing chat session.
func (h *Handler) ContinuePrompt(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatId")
	ctx := logger.AddFields(r.Context(),
		zap.String("chat_id", chatID),
		zap.String("action", "ContinuePrompt"),
	)

	req, ok := h.decodeAskRequest(ctx, w, r)
	if !ok {
		return
	}

	result, err := h.usecase.ContinueChat(ctx, chatID, req)
	if err != nil {
		h.handlePipelineError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "turn recorded")

	response.Success(w, entity.AskResponse{
		Message:  promptCreatedMessage,
		Response: result.Response,
	})
}

// ExportChat handles GET /chat/{id}/export?format=markdown|docx|pdf
func (h *Handler) ExportChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("chat_id", chatID),
		zap.String("action", "ExportChat"),
	)

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	fmtr, err := h.exporters.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "Unknown export format", err)
		return
	}

	chat, prompts, err := h.usecase.GetTranscript(ctx, chatID)
	if err != nil {
		if errors.Is(err, entity.ErrChatNotFound) {
			h.respondError(ctx, w, http.StatusNotFound, "Chat not found", err)
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, "Error exporting chat", err)
		return
	}

	data, err := fmtr.Format(chat.Title, prompts)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "Error formatting transcript", err)
		return
	}

	ctxzap.Info(ctx, "transcript exported",
		zap.String("format", string(format)),
		zap.Int("turns", len(prompts)),
	)

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"chat-%s%s\"", chat.ID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handlePipelineError maps pipeline failures to the response contract:
// file problems get the file-processing status, everything else is a
// server error. Details carry only the wrapped domain message.
func (h *Handler) handlePipelineError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrUnsupportedFileType), errors.Is(err, entity.ErrFileProcessing):
		h.respondError(ctx, w, http.StatusNotImplemented, "Error reading file", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrFileTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, entity.ErrInference):
		h.respondError(ctx, w, http.StatusInternalServerError, "Error generating response", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "Error creating prompt", err)
	}
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	ctxzap.Error(ctx, message, zap.Error(err))
	response.Error(w, status, message, details)
}
