// Package api exposes the service over HTTP (JSON) and MCP. Page rendering
// belongs to the presentation layer; this package only answers data
// requests and navigation questions.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/irvinng98/New2Canada/internal/chat"
	"github.com/irvinng98/New2Canada/internal/nav"
	"github.com/irvinng98/New2Canada/internal/profile"
	"github.com/irvinng98/New2Canada/internal/routing"
	"github.com/irvinng98/New2Canada/internal/session"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds the collaborators the HTTP layer wires together.
type Deps struct {
	Store    profile.Store
	Orch     *chat.Orchestrator
	Registry routing.Registry
	Sessions *session.Manager
}

type handler struct {
	store    profile.Store
	orch     *chat.Orchestrator
	registry routing.Registry
	sessions *session.Manager
}

// NewRouter builds the chi router for the JSON API.
func NewRouter(deps Deps) http.Handler {
	h := &handler{
		store:    deps.Store,
		orch:     deps.Orch,
		registry: deps.Registry,
		sessions: deps.Sessions,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Use(h.sessions.Middleware)
		api.Get("/categories", h.categories)
		api.Post("/profile", h.submitProfile)
		api.Get("/profile", h.getProfile)
		api.Delete("/session", h.endSession)
		api.Get("/nav", h.navState)
		api.Post("/chat", h.handleChat)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *handler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.registry.Categories(),
	})
}

// submitProfile stores the intake form for the session. Resubmission fully
// overwrites the previous profile; there is no partial merge.
func (h *handler) submitProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return
	}

	sid, ok := session.FromContext(r.Context())
	if !ok {
		httpError(w, http.StatusInternalServerError, "server_error", "no session")
		return
	}

	if err := h.store.Put(r.Context(), sid, p); err != nil {
		httpError(w, http.StatusInternalServerError, "server_error", "storing profile: %v", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := session.FromContext(r.Context())
	if !ok {
		httpError(w, http.StatusInternalServerError, "server_error", "no session")
		return
	}

	p, err := h.store.Get(r.Context(), sid)
	if errors.Is(err, profile.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "no profile for this session")
		return
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "server_error", "loading profile: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// endSession destroys the session's profile and expires the cookie.
func (h *handler) endSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := session.FromContext(r.Context())
	if !ok {
		httpError(w, http.StatusInternalServerError, "server_error", "no session")
		return
	}

	if err := h.store.Delete(r.Context(), sid); err != nil {
		httpError(w, http.StatusInternalServerError, "server_error", "deleting profile: %v", err)
		return
	}

	h.sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// navState tells the presentation layer which screens are reachable for
// this session, so it can redirect back to intake when the gate is closed.
func (h *handler) navState(w http.ResponseWriter, r *http.Request) {
	sid, ok := session.FromContext(r.Context())
	if !ok {
		httpError(w, http.StatusInternalServerError, "server_error", "no session")
		return
	}

	p, err := h.store.Get(r.Context(), sid)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		httpError(w, http.StatusInternalServerError, "server_error", "loading profile: %v", err)
		return
	}

	category := r.URL.Query().Get("category")
	writeJSON(w, http.StatusOK, map[string]bool{
		"assistance": nav.CanEnterAssistance(p),
		"chat":       nav.CanEnterChat(category, p),
	})
}

// handleChat runs one chat turn. The response envelope always carries a
// single "response" field: the model's text on success, an explanatory
// message on failure. Backend failures are redacted; the raw error never
// reaches the client.
func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()

	var req struct {
		Message  string `json:"message"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"response": "Error: invalid request body.",
		})
		return
	}

	sid, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"response": "Error: no session.",
		})
		return
	}

	// A missing profile is not an error here: the gate inside the
	// orchestrator turns it into a validation failure.
	p, err := h.store.Get(r.Context(), sid)
	if err != nil && !errors.Is(err, profile.ErrNotFound) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"response": "Error: could not load your profile.",
		})
		return
	}

	text, err := h.orch.Respond(r.Context(), chat.Turn{
		Category: req.Category,
		Message:  req.Message,
		Profile:  p,
	})

	var vErr *chat.ValidationError
	var bErr *chat.BackendError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"response": "Error: " + vErr.Reason + ".",
		})
	case errors.As(err, &bErr):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"response": "Sorry, " + bErr.Error() + ".",
		})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"response": "Sorry, something went wrong.",
		})
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"response": text,
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
