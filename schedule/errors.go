package schedule

import "fmt"

// NoActiveServiceError reports that no calendar entry exists for the
// requested date. Callers surface it as "no service today"; it is not
// retryable.
type NoActiveServiceError struct {
	Date string
}

func (e *NoActiveServiceError) Error() string {
	return "no active service for date " + e.Date
}

// StoreUnavailableError reports that a schedule store query failed while
// handling a request. Safe for the caller to retry.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("schedule store unavailable (%s): %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
