package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// FinancingApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// FinancingApplicationStatus represents the lifecycle stage of a financing
// application. Transitions beyond scoring are driven by manual admin review.
type FinancingApplicationStatus struct {
	value string
}

const (
	financingStatusSubmitted   = "SUBMITTED"
	financingStatusUnderReview = "UNDER_REVIEW"
	financingStatusApproved    = "APPROVED"
	financingStatusRejected    = "REJECTED"
	financingStatusDisbursed   = "DISBURSED"
)

var (
	FinancingStatusSubmitted   = FinancingApplicationStatus{value: financingStatusSubmitted}
	FinancingStatusUnderReview = FinancingApplicationStatus{value: financingStatusUnderReview}
	FinancingStatusApproved    = FinancingApplicationStatus{value: financingStatusApproved}
	FinancingStatusRejected    = FinancingApplicationStatus{value: financingStatusRejected}
	FinancingStatusDisbursed   = FinancingApplicationStatus{value: financingStatusDisbursed}
)

var validFinancingStatuses = map[string]FinancingApplicationStatus{
	financingStatusSubmitted:   FinancingStatusSubmitted,
	financingStatusUnderReview: FinancingStatusUnderReview,
	financingStatusApproved:    FinancingStatusApproved,
	financingStatusRejected:    FinancingStatusRejected,
	financingStatusDisbursed:   FinancingStatusDisbursed,
}

// NewFinancingApplicationStatus creates a FinancingApplicationStatus from a raw string.
func NewFinancingApplicationStatus(s string) (FinancingApplicationStatus, error) {
	v, ok := validFinancingStatuses[s]
	if !ok {
		return FinancingApplicationStatus{}, fmt.Errorf("invalid financing application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s FinancingApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s FinancingApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s FinancingApplicationStatus) Equal(other FinancingApplicationStatus) bool {
	return s.value == other.value
}

// IsTerminal reports whether no further transition is possible.
func (s FinancingApplicationStatus) IsTerminal() bool {
	return s.value == financingStatusRejected || s.value == financingStatusDisbursed
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
