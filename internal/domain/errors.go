package domain

import "fmt"

// AuthError reports a failed token exchange. Credential failures are not
// transient and are never retried.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %d - %s", e.StatusCode, e.Message)
}

// SubmissionError reports a rejected report job request. Fatal for the
// sub-range it belongs to.
type SubmissionError struct {
	StatusCode int
	Body       string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to start report job: %d - %s", e.StatusCode, e.Body)
}

// PollErrorKind classifies how a poll loop ended.
type PollErrorKind string

const (
	PollTimeout     PollErrorKind = "TIMEOUT"
	PollServerError PollErrorKind = "SERVER_ERROR"
)

// PollError reports a poll loop that ended without a ready report. A Timeout
// may be retried by the caller at a higher level; a ServerError is fatal.
type PollError struct {
	Kind       PollErrorKind
	StatusCode int
	Message    string
}

func (e *PollError) Error() string {
	if e.Kind == PollTimeout {
		return fmt.Sprintf("report not ready: %s", e.Message)
	}
	return fmt.Sprintf("error checking report readiness: %d - %s", e.StatusCode, e.Message)
}

// FetchError reports a failed download of a ready report.
type FetchError struct {
	StatusCode int
	Reason     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to retrieve report: %d - %s", e.StatusCode, e.Reason)
}

// ParseError reports a malformed reference file or an unexpected payload
// shape, carrying the source, row and field that failed.
type ParseError struct {
	Source string
	Row    int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d: field %q: %s", e.Source, e.Row, e.Field, e.Reason)
}
