package services

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports a missing or malformed request field. It is raised
// before any external call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PersistenceError reports a rejected write. Message is safe to show to the
// caller; the raw backend error stays wrapped for logging.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

const genericPersistenceMessage = "the record could not be saved"

// Patterns for extracting the human-readable segment from backend error text.
// Stored-procedure errors from Postgres arrive as "... RaiseException: <msg> CONTEXT: ...";
// the driver-level variants carry SQLSTATE or numeric codes.
var backendMessagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)RaiseException:\s*(.*?)\s*CONTEXT:`),
	regexp.MustCompile(`ERROR:\s*(.*?)\s*\(SQLSTATE`),
	regexp.MustCompile(`Error \d{4}(?: \(\w+\))?:\s*(.*)`),
	regexp.MustCompile(`constraint failed:\s*(.*)`),
}

// sanitizeBackendError extracts a user-safe message from a backend error.
// Raw error text is never surfaced verbatim; when no pattern matches, a
// generic message is returned. Best-effort UX, not a security boundary.
func sanitizeBackendError(err error) string {
	if err == nil {
		return genericPersistenceMessage
	}

	text := err.Error()
	for _, re := range backendMessagePatterns {
		matches := re.FindStringSubmatch(text)
		if len(matches) >= 2 {
			msg := strings.TrimSpace(matches[1])
			if msg != "" {
				return msg
			}
		}
	}

	return genericPersistenceMessage
}
