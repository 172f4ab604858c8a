package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const analyzePath = "/api/analyze"

// Checklist is shown alongside every failure.
var Checklist = []string{
	"The file is a valid PDF or TXT file",
	"The file is not corrupted",
	"You have entered a job description",
	"Your internet connection is stable",
}

var ErrSubmissionInFlight = errors.New("a submission is already pending")

// SubmitError is the user-facing outcome of a failed submission.
type SubmitError struct {
	Reason     string
	StatusCode int
}

func (e *SubmitError) Error() string {
	return e.Reason
}

// Message renders the reason followed by the numbered checklist.
func (e *SubmitError) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n\nPlease check:\n", e.Reason)
	for i, item := range Checklist {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}

type Submitter struct {
	http    *resty.Client
	machine *Machine
}

func NewSubmitter(baseURL string, timeout time.Duration, machine *Machine) *Submitter {
	if machine == nil {
		machine = NewMachine(nil)
	}
	return &Submitter{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout),
		machine: machine,
	}
}

func (s *Submitter) State() State {
	return s.machine.State()
}

// Submit uploads one resume with its job description and returns the
// suggestions. Any failure ends in StateError with a *SubmitError; nothing is
// retried.
func (s *Submitter) Submit(ctx context.Context, resumePath, jobDescription string) (string, error) {
	if err := s.machine.Transition(StatePending); err != nil {
		return "", ErrSubmissionInFlight
	}

	suggestions, err := s.post(ctx, resumePath, jobDescription)
	if err != nil {
		_ = s.machine.Transition(StateError)
		return "", err
	}

	_ = s.machine.Transition(StateComplete)
	return suggestions, nil
}

func (s *Submitter) post(ctx context.Context, resumePath, jobDescription string) (string, error) {
	file, err := os.Open(resumePath)
	if err != nil {
		return "", &SubmitError{Reason: fmt.Sprintf("cannot open resume: %v", err)}
	}
	defer file.Close()

	var result models.AnalyzeResponse
	var failure models.ErrorResponse

	resp, err := s.http.R().
		SetContext(ctx).
		SetMultipartField("resume", filepath.Base(resumePath), MediaTypeFor(resumePath), file).
		SetMultipartFormData(map[string]string{"jobdesc": jobDescription}).
		SetResult(&result).
		SetError(&failure).
		Post(analyzePath)
	if err != nil {
		return "", &SubmitError{Reason: fmt.Sprintf("request failed: %v", err)}
	}

	if resp.IsError() {
		reason := failure.Details
		if reason == "" {
			reason = failure.Error
		}
		if reason == "" {
			reason = "Failed to analyze resume"
		}
		return "", &SubmitError{Reason: reason, StatusCode: resp.StatusCode()}
	}

	if result.Suggestions == "" {
		return "", &SubmitError{
			Reason:     "malformed response from server: missing suggestions",
			StatusCode: resp.StatusCode(),
		}
	}

	return result.Suggestions, nil
}

// MediaTypeFor picks the declared type of an upload from its extension, the
// way a browser fills File.type.
func MediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
