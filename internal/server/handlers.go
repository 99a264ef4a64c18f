package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abhisek/studentsim/internal/analysis"
	"github.com/abhisek/studentsim/internal/gallery"
	"github.com/abhisek/studentsim/internal/llm"
	"github.com/abhisek/studentsim/internal/render"
	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

type credentialResponse struct {
	SessionID string `json:"sessionId"`
	Masked    string `json:"masked"`
}

func (s *Server) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	key, err := llm.ValidateCredential(req.APIKey)
	if err != nil {
		respondError(w, http.StatusBadRequest, llm.UserMessage(err))
		return
	}

	sid := r.Header.Get(SessionHeader)
	if sid == "" {
		sid = uuid.NewString()
	}
	if err := s.deps.Scratch.Set(r.Context(), credentialKey(sid), key, s.deps.CredentialTTL); err != nil {
		s.log.Error("caching credential failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to store credential")
		return
	}
	w.Header().Set(SessionHeader, sid)
	respondJSON(w, http.StatusOK, credentialResponse{SessionID: sid, Masked: llm.MaskCredential(key)})
}

func (s *Server) handleClearCredential(w http.ResponseWriter, r *http.Request) {
	sid := r.Header.Get(SessionHeader)
	if sid == "" {
		respondError(w, http.StatusBadRequest, SessionHeader+" header is required")
		return
	}
	if err := s.deps.Scratch.Delete(r.Context(), credentialKey(sid)); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear credential")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDemoQuestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, response.DemoQuestions)
}

type responsesRequest struct {
	Question          string `json:"question"`
	NumberOfResponses int    `json:"numberOfResponses"`
}

type responsesResponse struct {
	Responses []response.StudentResponse `json:"responses"`
	Source    response.Source            `json:"source"`
	Banner    string                     `json:"banner,omitempty"`
}

func (s *Server) handleResponses(w http.ResponseWriter, r *http.Request) {
	var req responsesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.sessionService(r).Submit(r.Context(), session.State{}, response.Question{
		Text:              req.Question,
		NumberOfResponses: req.NumberOfResponses,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, responsesResponse{Responses: st.Responses, Source: st.Source, Banner: st.Banner})
}

type analysisRequest struct {
	Question  string                     `json:"question"`
	Responses []response.StudentResponse `json:"responses"`
	FollowUp  string                     `json:"followUp"`
}

type analysisResponse struct {
	Analysis response.Analysis `json:"analysis"`
	Document *render.Document  `json:"document"`
	Text     string            `json:"text"`
	Banner   string            `json:"banner,omitempty"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := s.sessionService(r).Analyze(r.Context(), session.State{
		Question:  req.Question,
		Responses: req.Responses,
	}, req.FollowUp)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	doc := render.Render(st.Analysis.Response)
	respondJSON(w, http.StatusOK, analysisResponse{
		Analysis: *st.Analysis,
		Document: doc,
		Text:     render.Plain(doc),
		Banner:   st.Banner,
	})
}

type renderRequest struct {
	Text string `json:"text"`
}

type renderResponse struct {
	Document *render.Document `json:"document"`
	Text     string           `json:"text"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc := render.Render(req.Text)
	respondJSON(w, http.StatusOK, renderResponse{Document: doc, Text: render.Plain(doc)})
}

func (s *Server) handleSuggestedPrompts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, analysis.SuggestedPrompts())
}

type promptJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

func toPromptJSON(p store.SavedPrompt) promptJSON {
	return promptJSON{ID: p.ID, Name: p.Name, Text: p.Text, CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00")}
}

func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	prompts, err := s.deps.Prompts.List(r.Context())
	if err != nil {
		s.log.Error("listing prompts failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list prompts")
		return
	}
	out := make([]promptJSON, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, toPromptJSON(p))
	}
	respondJSON(w, http.StatusOK, out)
}

type savePromptRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

func (s *Server) handleSavePrompt(w http.ResponseWriter, r *http.Request) {
	var req savePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.deps.Prompts.Save(r.Context(), req.Name, req.Text)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, toPromptJSON(*p))
}

func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Prompts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGallery(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := s.deps.Gallery.List(r.Context(), limit)
	if err != nil {
		s.log.Error("listing gallery failed", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to list gallery")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type submitGalleryRequest struct {
	Title       string                     `json:"title"`
	SubmittedBy string                     `json:"submittedBy"`
	Question    string                     `json:"question"`
	Responses   []response.StudentResponse `json:"studentResponses"`
	Analysis    *response.Analysis         `json:"analysis"`
}

func (s *Server) handleSubmitGallery(w http.ResponseWriter, r *http.Request) {
	var req submitGalleryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := s.deps.Gallery.Submit(r.Context(), req.Title, req.SubmittedBy, session.State{
		Question:  req.Question,
		Responses: req.Responses,
		Analysis:  req.Analysis,
	})
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

func (s *Server) galleryEntry(w http.ResponseWriter, r *http.Request) (*gallery.Entry, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid gallery id")
		return nil, false
	}
	e, err := s.deps.Gallery.Get(r.Context(), id)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return nil, false
	}
	return e, true
}

func (s *Server) handleGetGallery(w http.ResponseWriter, r *http.Request) {
	if e, ok := s.galleryEntry(w, r); ok {
		respondJSON(w, http.StatusOK, e)
	}
}

func (s *Server) handleRemixGallery(w http.ResponseWriter, r *http.Request) {
	if e, ok := s.galleryEntry(w, r); ok {
		respondJSON(w, http.StatusOK, gallery.Remix(*e))
	}
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, response.ErrInvalidQuestion),
		errors.Is(err, analysis.ErrEmptyFollowUp),
		errors.Is(err, session.ErrNoResponses),
		errors.Is(err, gallery.ErrNothingToPublish),
		errors.Is(err, store.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
