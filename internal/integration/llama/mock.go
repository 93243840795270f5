package llama

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/roeev/docuchat/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a stand-in engine for local development without a
// running llama server.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, prompt string, params entity.GenerationParams) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating completion",
		zap.Int("prompt_length", len(prompt)),
		zap.Int("max_tokens", params.MaxTokens),
	)

	return "זוהי תשובה לדוגמה ממנוע ההסקה. השאלה התקבלה ועובדה בהצלחה. (MOCK)", nil
}
