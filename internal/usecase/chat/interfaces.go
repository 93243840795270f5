package chat

import (
	"context"

	"github.com/roeev/docuchat/internal/entity"
)

// Normalizer converts an uploaded file of a recognized type into plain text.
type Normalizer interface {
	Normalize(path, extension string) (string, error)
}

// PromptBuilder assembles the bounded-length prompt string.
type PromptBuilder interface {
	Build(question, fileText string) string
}

// InferenceGateway runs one serialized prompt completion.
type InferenceGateway interface {
	Infer(ctx context.Context, promptText string, params entity.GenerationParams) (string, error)
}
