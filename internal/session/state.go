// Package session holds the state of one teacher's working session: the
// question, its batch of student responses, the latest analysis and any
// notice to show. State is a value; every operation returns a new one.
package session

import (
	"github.com/abhisek/studentsim/internal/response"
)

// State is a snapshot of a working session.
type State struct {
	Question  string                     `json:"question"`
	Responses []response.StudentResponse `json:"responses"`
	Source    response.Source            `json:"source,omitempty"`

	// Analysis is nil until a follow-up has been answered.
	Analysis *response.Analysis `json:"analysis,omitempty"`

	// Banner is a user-facing notice, set when a live call failed and mock
	// data was served instead.
	Banner string `json:"banner,omitempty"`
}

// HasResponses reports whether a batch is loaded.
func (s State) HasResponses() bool {
	return len(s.Responses) > 0
}

// DismissBanner clears the notice.
func DismissBanner(s State) State {
	s.Banner = ""
	return s
}

func cloneResponses(in []response.StudentResponse) []response.StudentResponse {
	if in == nil {
		return nil
	}
	return append([]response.StudentResponse(nil), in...)
}
