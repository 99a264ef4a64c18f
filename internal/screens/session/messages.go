package session

import (
	"time"

	"github.com/abhisek/studentsim/internal/gallery"
	sess "github.com/abhisek/studentsim/internal/session"
)

// submittedMsg is sent when a batch of responses is ready.
type submittedMsg struct {
	State sess.State
	Err   error
}

// analyzedMsg is sent when a follow-up analysis is ready.
type analyzedMsg struct {
	State sess.State
	Err   error
}

// publishedMsg is sent after the session was published to the gallery.
type publishedMsg struct {
	Entry *gallery.Entry
	Err   error
}

// promptSavedMsg confirms the follow-up prompt was saved.
type promptSavedMsg struct {
	Err error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time
