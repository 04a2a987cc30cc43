package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ehwaz/internal/confirm"
	"github.com/starford/ehwaz/internal/engine"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(eng *engine.Engine, confirms *confirm.Manager, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(eng, confirms)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Computer profile registry.
	r.Get("/computers", h.ListComputers)
	r.Post("/computers", h.RegisterComputer)
	r.Put("/computers/{id}", h.UpdateComputer)
	r.Delete("/computers/{id}", h.RemoveComputer)

	// Path translation and location codec.
	r.Post("/translate", h.Translate)
	r.Post("/locations/encode", h.EncodeLocation)
	r.Post("/locations/decode", h.DecodeLocation)

	// Document scan passes and vault maintenance.
	r.Post("/documents/convert", h.ConvertDocument)
	r.Post("/documents/scan", h.ScanContent)
	r.Post("/documents/view", h.DocumentView)
	r.Post("/documents/identifiers", h.Identifiers)
	r.Post("/documents/move", h.MoveDocument)
	r.Delete("/documents", h.DeleteDocument)

	// Reference consistency.
	r.Get("/references", h.FindReferences)
	r.Get("/references/summary", h.ReferencesSummary)
	r.Post("/references/replace", h.ReplaceReferences)
	r.Post("/confirmations/{id}", h.ResolveConfirmation)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
