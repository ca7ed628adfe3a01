package port

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by stores and repositories.
var (
	// ErrApplicantNotFound means the applicant identity cannot be resolved
	// at all. Terminal: retrying will not help.
	ErrApplicantNotFound = errors.New("applicant not found")

	// ErrApplicationNotFound means no financing application exists for the
	// given id within the tenant.
	ErrApplicationNotFound = errors.New("financing application not found")
)

// DataAccessError wraps an underlying store failure (connection loss,
// timeout, malformed row). Unlike ErrApplicantNotFound it is retryable and
// says nothing about the applicant's creditworthiness.
type DataAccessError struct {
	Op  string // which read failed, e.g. "list operations"
	Err error
}

// NewDataAccessError wraps err as a retryable data-access failure.
func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

// IsDataAccess reports whether err is (or wraps) a DataAccessError.
func IsDataAccess(err error) bool {
	var dae *DataAccessError
	return errors.As(err, &dae)
}
