package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roeev/docuchat/internal/config"
	"github.com/roeev/docuchat/internal/entity"
	"github.com/roeev/docuchat/internal/pkg/validator"
)

type fakeUsecase struct {
	newChatResult  *entity.AskResult
	newChatErr     error
	continueErr    error
	chats          []*entity.Chat
	chat           *entity.Chat
	chatErr        error
	prompts        []*entity.Prompt
	lastAskRequest *entity.AskRequest
}

func (f *fakeUsecase) NewChat(ctx context.Context, req *entity.AskRequest) (*entity.AskResult, error) {
	f.lastAskRequest = req
	if f.newChatErr != nil {
		return nil, f.newChatErr
	}
	return f.newChatResult, nil
}

func (f *fakeUsecase) ContinueChat(ctx context.Context, chatID string, req *entity.AskRequest) (*entity.AskResult, error) {
	f.lastAskRequest = req
	if f.continueErr != nil {
		return nil, f.continueErr
	}
	return &entity.AskResult{ChatID: chatID, Response: "תשובה"}, nil
}

func (f *fakeUsecase) ListChats(ctx context.Context) ([]*entity.Chat, error) {
	return f.chats, nil
}

func (f *fakeUsecase) GetChat(ctx context.Context, id string) (*entity.Chat, error) {
	return f.chat, f.chatErr
}

func (f *fakeUsecase) ListPrompts(ctx context.Context, chatID string) ([]*entity.Prompt, error) {
	return f.prompts, nil
}

func (f *fakeUsecase) GetTranscript(ctx context.Context, chatID string) (*entity.Chat, []*entity.Prompt, error) {
	if f.chatErr != nil {
		return nil, nil, f.chatErr
	}
	return f.chat, f.prompts, nil
}

func newTestServer(t *testing.T, usecase *fakeUsecase) *httptest.Server {
	t.Helper()
	cfg := config.FileUploadConfig{
		Dir:           t.TempDir(),
		MaxFileSize:   1 << 20,
		MaxUploadSize: 4 << 20,
	}
	handler := NewHandler(usecase, cfg, validator.NewValidator(cfg))

	r := chi.NewRouter()
	RegisterRoutes(r, handler)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func askForm(t *testing.T, fields map[string]string, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCreateChat_Success(t *testing.T) {
	usecase := &fakeUsecase{
		newChatResult: &entity.AskResult{ChatID: "chat-1", Response: "תשובה מהמודל"},
	}
	srv := newTestServer(t, usecase)

	body, contentType := askForm(t, map[string]string{"question": "מה נשמע?"}, "", "")
	resp, err := http.Post(srv.URL+"/chat", contentType, body)
	require.NoError(t, err)

	var got entity.AskResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Prompt created successfully", got.Message)
	assert.Equal(t, "תשובה מהמודל", got.Response)
	assert.Equal(t, "chat-1", got.ChatID)
	assert.Equal(t, entity.DefaultGenerationParams(), usecase.lastAskRequest.Params)
}

func TestCreateChat_WithUploadAndParams(t *testing.T) {
	usecase := &fakeUsecase{
		newChatResult: &entity.AskResult{ChatID: "chat-1", Response: "ok"},
	}
	srv := newTestServer(t, usecase)

	body, contentType := askForm(t,
		map[string]string{"question": "סכם", "temperature": "1.1", "maxTokens": "300", "topP": "0.8"},
		"notes.TXT", "file body")
	resp, err := http.Post(srv.URL+"/chat", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	req := usecase.lastAskRequest
	require.NotNil(t, req.Upload)
	assert.Equal(t, ".txt", req.Upload.Extension, "extension is lowercased")
	assert.Equal(t, "notes.TXT", req.Upload.Filename)
	assert.Equal(t, int64(len("file body")), req.Upload.Size)
	assert.Equal(t, 1.1, req.Params.Temperature)
	assert.Equal(t, 300, req.Params.MaxTokens)
	assert.Equal(t, 0.8, req.Params.TopP)
}

func TestCreateChat_MissingQuestion(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{})

	body, contentType := askForm(t, map[string]string{"question": "  "}, "", "")
	resp, err := http.Post(srv.URL+"/chat", contentType, body)
	require.NoError(t, err)

	var got entity.ErrorResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request", got.Error)
}

func TestCreateChat_InvalidParameter(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{})

	body, contentType := askForm(t, map[string]string{"question": "שאלה", "temperature": "9"}, "", "")
	resp, err := http.Post(srv.URL+"/chat", contentType, body)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateChat_FileErrorsGetNotImplemented(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unsupported type", fmt.Errorf("%w: .exe", entity.ErrUnsupportedFileType)},
		{"processing failure", fmt.Errorf("%w: corrupt archive", entity.ErrFileProcessing)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeUsecase{newChatErr: tt.err})

			body, contentType := askForm(t, map[string]string{"question": "שאלה"}, "", "")
			resp, err := http.Post(srv.URL+"/chat", contentType, body)
			require.NoError(t, err)

			var got entity.ErrorResponse
			decodeJSON(t, resp, &got)

			assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
			assert.Equal(t, "Error reading file", got.Error)
		})
	}
}

func TestCreateChat_InferenceErrorGetsInternalError(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{
		newChatErr: fmt.Errorf("run inference: %w", entity.ErrInference),
	})

	body, contentType := askForm(t, map[string]string{"question": "שאלה"}, "", "")
	resp, err := http.Post(srv.URL+"/chat", contentType, body)
	require.NoError(t, err)

	var got entity.ErrorResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Error generating response", got.Error)
}

func TestContinuePrompt_Success(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{})

	body, contentType := askForm(t, map[string]string{"question": "ועוד שאלה"}, "", "")
	resp, err := http.Post(srv.URL+"/prompt/chat-7", contentType, body)
	require.NoError(t, err)

	var got entity.AskResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "תשובה", got.Response)
	assert.Empty(t, got.ChatID, "continuing a chat does not echo the id")
}

func TestGetChat_UnknownIDYieldsNullChat(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{chatErr: entity.ErrChatNotFound})

	resp, err := http.Get(srv.URL + "/chat/missing")
	require.NoError(t, err)

	var got entity.ChatResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, got.Chat)
}

func TestListChats(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{
		chats: []*entity.Chat{{ID: "a", Title: "שאלה ראשונה"}},
	})

	resp, err := http.Get(srv.URL + "/chat")
	require.NoError(t, err)

	var got entity.ChatsResponse
	decodeJSON(t, resp, &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, got.Chats, 1)
	assert.Equal(t, "שאלה ראשונה", got.Chats[0].Title)
}

func TestExportChat_Markdown(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{
		chat: &entity.Chat{ID: "chat-1", Title: "כותרת"},
		prompts: []*entity.Prompt{
			{Question: "שאלה אחת", Response: "תשובה אחת"},
		},
	})

	resp, err := http.Get(srv.URL + "/chat/chat-1/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "chat-chat-1.md")
}

func TestExportChat_UnknownFormat(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{})

	resp, err := http.Get(srv.URL + "/chat/chat-1/export?format=xml")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExportChat_NotFound(t *testing.T) {
	srv := newTestServer(t, &fakeUsecase{chatErr: entity.ErrChatNotFound})

	resp, err := http.Get(srv.URL + "/chat/missing/export?format=pdf")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
