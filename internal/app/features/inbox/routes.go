// internal/app/features/inbox/routes.go
package inbox

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the direct-messaging routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Open)
	r.Get("/{conversationID}/messages", h.MessagesList)
	r.Post("/{conversationID}/messages", h.Send)
}
