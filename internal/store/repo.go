package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by deletes that match no row. Lookups return
// (nil, nil) instead.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Purpose string    // exact purpose match when set
	From    time.Time // timestamp >= From
}

// GalleryRecord is one published classroom session. StudentResponses holds
// the serialized batch exactly as submitted.
type GalleryRecord struct {
	ID               int64
	Title            string
	Question         string
	StudentResponses string
	AnalysisQuestion string // empty when no analysis was attached
	AnalysisResult   string
	SubmittedBy      string
	SubmittedAt      time.Time
}

// GalleryRepo persists published sessions.
type GalleryRepo interface {
	// Insert stores rec and returns it with ID and SubmittedAt filled in.
	// An empty SubmittedBy is stored as "Anonymous".
	Insert(ctx context.Context, rec GalleryRecord) (*GalleryRecord, error)

	// List returns records newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]GalleryRecord, error)

	// Get returns the record with id, or nil if none exists.
	Get(ctx context.Context, id int64) (*GalleryRecord, error)
}

// SavedPrompt is a follow-up prompt a teacher kept for reuse.
type SavedPrompt struct {
	ID        string
	Name      string
	Text      string
	CreatedAt time.Time
}

// PromptRepo persists saved follow-up prompts.
type PromptRepo interface {
	Save(ctx context.Context, name, text string) (*SavedPrompt, error)
	List(ctx context.Context) ([]SavedPrompt, error)
	Delete(ctx context.Context, id string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls and tokens for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls and tokens for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
