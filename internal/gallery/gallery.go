// Package gallery publishes finished sessions so other teachers can browse
// and remix them.
package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studentsim/internal/response"
	"github.com/abhisek/studentsim/internal/session"
	"github.com/abhisek/studentsim/internal/store"
)

// maxDefaultTitle bounds a title derived from the question.
const maxDefaultTitle = 60

// ErrNothingToPublish is returned when a session has no responses.
var ErrNothingToPublish = errors.New("session has no student responses")

// Entry is a published session.
type Entry struct {
	ID          int64                      `json:"id"`
	Title       string                     `json:"title"`
	Question    string                     `json:"question"`
	Responses   []response.StudentResponse `json:"studentResponses"`
	Analysis    *response.Analysis         `json:"analysis,omitempty"`
	SubmittedBy string                     `json:"submittedBy"`
	SubmittedAt time.Time                  `json:"submittedAt"`
}

// Service reads and writes gallery entries.
type Service struct {
	repo store.GalleryRepo
}

// NewService creates a Service over repo.
func NewService(repo store.GalleryRepo) *Service {
	return &Service{repo: repo}
}

// Submit publishes st. An empty title falls back to the question and an
// empty submitter to "Anonymous".
func (s *Service) Submit(ctx context.Context, title, submittedBy string, st session.State) (*Entry, error) {
	if !st.HasResponses() {
		return nil, ErrNothingToPublish
	}

	body, err := json.Marshal(st.Responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}

	rec := store.GalleryRecord{
		Title:            defaultTitle(title, st.Question),
		Question:         st.Question,
		StudentResponses: string(body),
		SubmittedBy:      strings.TrimSpace(submittedBy),
	}
	if st.Analysis != nil {
		rec.AnalysisQuestion = st.Analysis.Question
		rec.AnalysisResult = st.Analysis.Response
	}

	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("publish session: %w", err)
	}
	return fromRecord(*saved)
}

// List returns entries newest first. limit <= 0 means all.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	recs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		e, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, nil
}

// Get returns the entry with id or store.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Entry, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get gallery entry %d: %w", id, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("gallery entry %d: %w", id, store.ErrNotFound)
	}
	return fromRecord(*rec)
}

// Remix loads a published entry back into a working session.
func Remix(e Entry) session.State {
	st := session.State{
		Question:  e.Question,
		Responses: append([]response.StudentResponse(nil), e.Responses...),
		Source:    response.SourceGallery,
	}
	if e.Analysis != nil {
		a := *e.Analysis
		st.Analysis = &a
	}
	return st
}

func fromRecord(r store.GalleryRecord) (*Entry, error) {
	e := &Entry{
		ID:          r.ID,
		Title:       r.Title,
		Question:    r.Question,
		SubmittedBy: r.SubmittedBy,
		SubmittedAt: r.SubmittedAt,
	}
	if err := json.Unmarshal([]byte(r.StudentResponses), &e.Responses); err != nil {
		return nil, fmt.Errorf("decode responses of gallery entry %d: %w", r.ID, err)
	}
	if r.AnalysisQuestion != "" || r.AnalysisResult != "" {
		e.Analysis = &response.Analysis{Question: r.AnalysisQuestion, Response: r.AnalysisResult}
	}
	return e, nil
}

func defaultTitle(title, question string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	q := []rune(strings.TrimSpace(question))
	if len(q) <= maxDefaultTitle {
		return string(q)
	}
	return string(q[:maxDefaultTitle]) + "..."
}
