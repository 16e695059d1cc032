package llm

import (
	"errors"
	"fmt"
)

// ExtractionError marks a failed structured extraction: backend
// transport failure, non-2xx status, malformed output, or an empty
// result. The caller treats it as fatal for the current webhook.
type ExtractionError struct {
	Reason string
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newExtractionError(reason string, cause error) *ExtractionError {
	return &ExtractionError{Reason: reason, Cause: cause}
}

func IsExtractionError(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}
