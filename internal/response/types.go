package response

import (
	"errors"
	"fmt"
	"strings"
)

// MaxResponses is the largest batch a single question may request.
const MaxResponses = 50

// Quality is a coarse label summarizing the perceived depth of a response.
type Quality string

const (
	QualityStrong  Quality = "strong"
	QualityAverage Quality = "average"
	QualityWeak    Quality = "weak"
)

// Valid reports whether q is one of the known tiers. The empty quality
// (not assessed) is not valid.
func (q Quality) Valid() bool {
	switch q {
	case QualityStrong, QualityAverage, QualityWeak:
		return true
	}
	return false
}

// StudentResponse is one synthesized student answer.
type StudentResponse struct {
	// ID is the 1-based position of the response in its batch.
	ID int `json:"id"`

	// Content is the answer text. Never empty.
	Content string `json:"content"`

	// Quality is set only when the response was assessed.
	Quality Quality `json:"quality,omitempty"`
}

// Question is the teacher-authored prompt that triggers a synthesis.
type Question struct {
	Text              string `json:"text"`
	NumberOfResponses int    `json:"numberOfResponses"`
}

// ErrInvalidQuestion is returned by Question.Validate.
var ErrInvalidQuestion = errors.New("invalid question")

// Validate checks the text is non-empty and the count is within [1, MaxResponses].
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidQuestion)
	}
	if q.NumberOfResponses < 1 || q.NumberOfResponses > MaxResponses {
		return fmt.Errorf("%w: number of responses must be between 1 and %d, got %d",
			ErrInvalidQuestion, MaxResponses, q.NumberOfResponses)
	}
	return nil
}

// Analysis is a follow-up question and the generated answer over a batch.
type Analysis struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// Source records where a batch of responses came from.
type Source string

const (
	SourceDemo Source = "demo"
	SourceMock Source = "mock"
	SourceLive Source = "live"

	// SourceGallery marks a batch loaded back from a published session.
	SourceGallery Source = "gallery"
)
