package auth

import (
	"errors"
	"sync"
)

// ErrSubmissionInProgress is returned when a form is submitted again before
// its previous submission settled.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// SubmissionState drives the submit button of a form.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Submitting
	Success
	Failed
)

func (s SubmissionState) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// LoadingFunc observes the loading indicator of a form.
type LoadingFunc func(loading bool)

// Submission guards a single form instance: at most one submission is
// outstanding, and the loading indicator is raised and lowered exactly once
// per submission.
type Submission struct {
	mu        sync.Mutex
	state     SubmissionState
	loading   bool
	onLoading LoadingFunc
}

// NewSubmission creates an idle Submission. onLoading may be nil.
func NewSubmission(onLoading LoadingFunc) *Submission {
	return &Submission{onLoading: onLoading}
}

// Begin moves the form to Submitting and raises the loading indicator.
func (s *Submission) Begin() error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrSubmissionInProgress
	}
	s.loading = true
	s.state = Submitting
	s.mu.Unlock()

	s.notify(true)
	return nil
}

// Settle records the terminal state and lowers the loading indicator. Calls
// without a matching Begin are ignored.
func (s *Submission) Settle(state SubmissionState) {
	s.mu.Lock()
	if !s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = false
	s.state = state
	s.mu.Unlock()

	s.notify(false)
}

// State returns the current state.
func (s *Submission) State() SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loading reports whether a submission is outstanding.
func (s *Submission) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Submission) notify(loading bool) {
	if s.onLoading != nil {
		s.onLoading(loading)
	}
}
