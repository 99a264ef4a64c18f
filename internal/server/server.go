// Package server exposes the simulator over a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/logger"
	"github.com/abhisek/studentsim/internal/scratch"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

// SessionHeader carries the client session id that scopes a cached
// credential.
const SessionHeader = "X-Session-ID"

// ProviderFactory builds a provider for a configuration.
type ProviderFactory func(ctx context.Context, cfg llm.Config) (llm.Provider, error)

// Deps are the collaborators of a Server.
type Deps struct {
	// LLM is the base configuration a cached credential is applied to.
	LLM llm.Config

	// Default serves clients without a cached credential. Nil means mock.
	Default llm.Provider

	// NewProvider defaults to llm.NewProvider logging to Events.
	NewProvider ProviderFactory

	Gallery *gallery.Service
	Prompts store.PromptRepo
	Events  store.EventRepo
	Scratch scratch.Store

	CredentialTTL time.Duration
	Logger        *logger.Logger
}

// Server holds the handlers of the API.
type Server struct {
	deps Deps
	log  *logger.Logger
}

// New creates a Server. A nil Scratch uses an in-process store.
func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Scratch == nil {
		d.Scratch = scratch.NewMemory()
	}
	if d.CredentialTTL <= 0 {
		d.CredentialTTL = time.Hour
	}
	if d.NewProvider == nil {
		events, log := d.Events, d.Logger
		d.NewProvider = func(ctx context.Context, cfg llm.Config) (llm.Provider, error) {
			return llm.NewProvider(ctx, cfg, events, log)
		}
	}
	return &Server{deps: d, log: d.Logger.With("component", "server")}
}

// Routes wires the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Post("/credential", s.handleSetCredential)
		api.Delete("/credential", s.handleClearCredential)

		api.Get("/demo/questions", s.handleDemoQuestions)
		api.Post("/responses", s.handleResponses)
		api.Post("/analysis", s.handleAnalysis)
		api.Post("/render", s.handleRender)

		api.Get("/prompts/suggested", s.handleSuggestedPrompts)
		api.Get("/prompts", s.handleListPrompts)
		api.Post("/prompts", s.handleSavePrompt)
		api.Delete("/prompts/{id}", s.handleDeletePrompt)

		if s.deps.Gallery != nil {
			api.Get("/gallery", s.handleListGallery)
			api.Post("/gallery", s.handleSubmitGallery)
			api.Get("/gallery/{id}", s.handleGetGallery)
			api.Get("/gallery/{id}/remix", s.handleRemixGallery)
		}
	})

	return r
}

// sessionService builds the session service for the request's provider.
func (s *Server) sessionService(r *http.Request) *session.Service {
	return session.NewService(session.Deps{
		Provider: s.providerFor(r),
		Logger:   s.log.With("request_id", middleware.GetReqID(r.Context())),
	})
}

// providerFor uses the credential cached for the client session when one
// exists, else the default provider.
func (s *Server) providerFor(r *http.Request) llm.Provider {
	sid := r.Header.Get(SessionHeader)
	if sid == "" {
		return s.deps.Default
	}
	key, err := s.deps.Scratch.Get(r.Context(), credentialKey(sid))
	if err != nil {
		return s.deps.Default
	}
	p, err := s.deps.NewProvider(r.Context(), s.deps.LLM.WithCredential(key))
	if err != nil {
		s.log.Warn("building provider from cached credential failed", "error", err)
		return s.deps.Default
	}
	return p
}

func credentialKey(sid string) string {
	return "credential:" + sid
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
