package entity

import "time"

// Chat is a conversation thread. It is created once per new
// conversation and never mutated afterwards; deletion is not part of
// this service.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Prompt is one question/response turn recorded under a chat. A turn
// is written only after the engine returned a non-empty response, so a
// persisted turn is always complete.
type Prompt struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Upload describes a transient uploaded file already saved to local
// storage. It is owned by the current request; the pipeline removes it
// before the request completes, whatever the outcome.
type Upload struct {
	Path      string
	Filename  string
	Extension string
	Size      int64
}

// GenerationParams are the bounds-checked sampling parameters passed
// through to the inference engine.
type GenerationParams struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 700
	DefaultTopP        = 0.9
)

// DefaultGenerationParams returns the parameters used when the request
// does not override them.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		TopP:        DefaultTopP,
	}
}
