package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/domain/event"
	"github.com/moroapp/moro/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// FinancingApplication aggregate root
// ---------------------------------------------------------------------------

// FinancingApplication is an immutable aggregate. Every mutation returns a
// new copy. The eligibility score is a snapshot attached once, right after
// submission; the approve/reject decision itself always stays with a human
// reviewer.
type FinancingApplication struct {
	id              string
	tenantID        string
	applicantID     string
	requestedAmount decimal.Decimal
	currency        string
	purpose         string
	phoneNumber     string
	status          valueobject.FinancingApplicationStatus

	totalScore     int
	riskLevel      valueobject.RiskLevel
	recommendation valueobject.Recommendation
	reasoning      []string

	reviewerID        string
	reviewNote        string
	providerReference string

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewFinancingApplication creates a brand-new application in SUBMITTED status.
func NewFinancingApplication(
	tenantID, applicantID string,
	requestedAmount decimal.Decimal,
	currency, purpose, phoneNumber string,
	now time.Time,
) (FinancingApplication, error) {
	if tenantID == "" {
		return FinancingApplication{}, errors.New("tenant ID is required")
	}
	if applicantID == "" {
		return FinancingApplication{}, errors.New("applicant ID is required")
	}
	if requestedAmount.LessThanOrEqual(decimal.Zero) {
		return FinancingApplication{}, errors.New("requested amount must be positive")
	}
	if currency == "" {
		return FinancingApplication{}, errors.New("currency is required")
	}

	id := uuid.New().String()
	app := FinancingApplication{
		id:              id,
		tenantID:        tenantID,
		applicantID:     applicantID,
		requestedAmount: requestedAmount,
		currency:        currency,
		purpose:         purpose,
		phoneNumber:     phoneNumber,
		status:          valueobject.FinancingStatusSubmitted,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	app.domainEvents = append(app.domainEvents, event.NewFinancingApplicationSubmitted(
		id, tenantID, applicantID, requestedAmount, currency, purpose,
	))
	return app, nil
}

// ReconstructFinancingApplication rebuilds an aggregate from persistence
// without side-effects.
func ReconstructFinancingApplication(
	id, tenantID, applicantID string,
	requestedAmount decimal.Decimal,
	currency, purpose, phoneNumber string,
	status valueobject.FinancingApplicationStatus,
	totalScore int,
	riskLevel valueobject.RiskLevel,
	recommendation valueobject.Recommendation,
	reasoning []string,
	reviewerID, reviewNote, providerReference string,
	version int,
	createdAt, updatedAt time.Time,
) FinancingApplication {
	return FinancingApplication{
		id:                id,
		tenantID:          tenantID,
		applicantID:       applicantID,
		requestedAmount:   requestedAmount,
		currency:          currency,
		purpose:           purpose,
		phoneNumber:       phoneNumber,
		status:            status,
		totalScore:        totalScore,
		riskLevel:         riskLevel,
		recommendation:    recommendation,
		reasoning:         reasoning,
		reviewerID:        reviewerID,
		reviewNote:        reviewNote,
		providerReference: providerReference,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// AttachScore records the eligibility score snapshot and moves the
// application to UNDER_REVIEW, emitting FinancingApplicationScored.
func (a FinancingApplication) AttachScore(
	totalScore int,
	riskLevel valueobject.RiskLevel,
	recommendation valueobject.Recommendation,
	reasoning []string,
	now time.Time,
) (FinancingApplication, error) {
	if !a.status.Equal(valueobject.FinancingStatusSubmitted) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.FinancingStatusUnderReview
	next.totalScore = totalScore
	next.riskLevel = riskLevel
	next.recommendation = recommendation
	next.reasoning = append([]string(nil), reasoning...)
	next.version = a.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingApplicationScored(
		a.id, a.tenantID, a.applicantID,
		totalScore, riskLevel.String(), recommendation.String(), reasoning,
	))
	return next, nil
}

// Approve transitions UNDER_REVIEW -> APPROVED and emits
// FinancingApplicationApproved.
func (a FinancingApplication) Approve(reviewerID, note string, now time.Time) (FinancingApplication, error) {
	if !a.status.Equal(valueobject.FinancingStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.FinancingStatusApproved
	next.reviewerID = reviewerID
	next.reviewNote = note
	next.version = a.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingApplicationApproved(
		a.id, a.tenantID, a.applicantID, reviewerID, note,
	))
	return next, nil
}

// Reject transitions UNDER_REVIEW -> REJECTED and emits
// FinancingApplicationRejected.
func (a FinancingApplication) Reject(reviewerID, note string, now time.Time) (FinancingApplication, error) {
	if !a.status.Equal(valueobject.FinancingStatusUnderReview) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.FinancingStatusRejected
	next.reviewerID = reviewerID
	next.reviewNote = note
	next.version = a.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingApplicationRejected(
		a.id, a.tenantID, a.applicantID, reviewerID, note,
	))
	return next, nil
}

// MarkDisbursed transitions APPROVED -> DISBURSED once the mobile-money
// transfer has been accepted, emitting FinancingApplicationDisbursed.
func (a FinancingApplication) MarkDisbursed(providerReference string, now time.Time) (FinancingApplication, error) {
	if !a.status.Equal(valueobject.FinancingStatusApproved) {
		return a, valueobject.ErrInvalidStatusTransition
	}
	next := a
	next.status = valueobject.FinancingStatusDisbursed
	next.providerReference = providerReference
	next.version = a.version + 1
	next.updatedAt = now
	next.domainEvents = copyEvents(a.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinancingApplicationDisbursed(
		a.id, a.tenantID, a.applicantID, a.requestedAmount, a.currency, providerReference,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a FinancingApplication) ID() string                       { return a.id }
func (a FinancingApplication) TenantID() string                 { return a.tenantID }
func (a FinancingApplication) ApplicantID() string              { return a.applicantID }
func (a FinancingApplication) RequestedAmount() decimal.Decimal { return a.requestedAmount }
func (a FinancingApplication) Currency() string                 { return a.currency }
func (a FinancingApplication) Purpose() string                  { return a.purpose }
func (a FinancingApplication) PhoneNumber() string              { return a.phoneNumber }

func (a FinancingApplication) Status() valueobject.FinancingApplicationStatus { return a.status }

func (a FinancingApplication) TotalScore() int                            { return a.totalScore }
func (a FinancingApplication) RiskLevel() valueobject.RiskLevel           { return a.riskLevel }
func (a FinancingApplication) Recommendation() valueobject.Recommendation { return a.recommendation }
func (a FinancingApplication) Reasoning() []string                        { return a.reasoning }

func (a FinancingApplication) ReviewerID() string        { return a.reviewerID }
func (a FinancingApplication) ReviewNote() string        { return a.reviewNote }
func (a FinancingApplication) ProviderReference() string { return a.providerReference }

func (a FinancingApplication) Version() int                      { return a.version }
func (a FinancingApplication) CreatedAt() time.Time              { return a.createdAt }
func (a FinancingApplication) UpdatedAt() time.Time              { return a.updatedAt }
func (a FinancingApplication) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a FinancingApplication) ClearEvents() FinancingApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
