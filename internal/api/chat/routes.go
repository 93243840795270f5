package chat

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/", h.ListChats)
		r.Post("/", h.CreateChat)
		r.Get("/{id}", h.GetChat)
		r.Get("/{id}/export", h.ExportChat)
	})

	r.Get("/prompts/{chatId}", h.ListPrompts)
	r.Post("/prompt/{chatId}", h.ContinuePrompt)
}
