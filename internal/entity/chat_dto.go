package entity

// AskRequest is the decoded body of the two ask endpoints. Upload is
// nil when no file accompanied the question.
type AskRequest struct {
	Question string
	Upload   *Upload
	Params   GenerationParams
}

// AskResult is what a completed pipeline run produces.
type AskResult struct {
	ChatID   string
	Response string
}

// AskResponse is the success body of POST /chat. ChatID is omitted on
// the existing-chat endpoint, which already knows it.
type AskResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
	ChatID   string `json:"chatId,omitempty"`
}

// ChatsResponse wraps the chat list, matching the original API shape.
type ChatsResponse struct {
	Chats []*Chat `json:"chats"`
}

// ChatResponse wraps a single chat; Chat is null when the id is
// unknown.
type ChatResponse struct {
	Chat *Chat `json:"chat"`
}

// PromptsResponse wraps the turns of one chat.
type PromptsResponse struct {
	Prompts []*Prompt `json:"prompts"`
}

// ErrorResponse carries a human-readable cause; Details never exposes
// engine or store internals beyond the wrapped message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// ExportFormat selects a transcript export renderer.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)
