package event

import (
	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Financing Application Events
// ---------------------------------------------------------------------------

// FinancingApplicationSubmitted is raised when a new application enters the system.
type FinancingApplicationSubmitted struct {
	events.BaseEvent
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose"`
}

func NewFinancingApplicationSubmitted(
	applicationID, tenantID, applicantID string,
	amount decimal.Decimal, currency, purpose string,
) FinancingApplicationSubmitted {
	return FinancingApplicationSubmitted{
		BaseEvent:       events.NewBaseEvent("financing.application.submitted", applicationID, "FinancingApplication", tenantID),
		ApplicantID:     applicantID,
		RequestedAmount: amount,
		Currency:        currency,
		Purpose:         purpose,
	}
}

// FinancingApplicationScored is raised when the eligibility score has been
// computed and attached to the application.
type FinancingApplicationScored struct {
	events.BaseEvent
	ApplicantID    string   `json:"applicant_id"`
	TotalScore     int      `json:"total_score"`
	RiskLevel      string   `json:"risk_level"`
	Recommendation string   `json:"recommendation"`
	Reasoning      []string `json:"reasoning"`
}

func NewFinancingApplicationScored(
	applicationID, tenantID, applicantID string,
	totalScore int, riskLevel, recommendation string, reasoning []string,
) FinancingApplicationScored {
	return FinancingApplicationScored{
		BaseEvent:      events.NewBaseEvent("financing.application.scored", applicationID, "FinancingApplication", tenantID),
		ApplicantID:    applicantID,
		TotalScore:     totalScore,
		RiskLevel:      riskLevel,
		Recommendation: recommendation,
		Reasoning:      reasoning,
	}
}

// FinancingApplicationApproved is raised when a reviewer approves an application.
type FinancingApplicationApproved struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	ReviewerID  string `json:"reviewer_id"`
	Note        string `json:"note"`
}

func NewFinancingApplicationApproved(
	applicationID, tenantID, applicantID, reviewerID, note string,
) FinancingApplicationApproved {
	return FinancingApplicationApproved{
		BaseEvent:   events.NewBaseEvent("financing.application.approved", applicationID, "FinancingApplication", tenantID),
		ApplicantID: applicantID,
		ReviewerID:  reviewerID,
		Note:        note,
	}
}

// FinancingApplicationRejected is raised when a reviewer rejects an application.
type FinancingApplicationRejected struct {
	events.BaseEvent
	ApplicantID string `json:"applicant_id"`
	ReviewerID  string `json:"reviewer_id"`
	Note        string `json:"note"`
}

func NewFinancingApplicationRejected(
	applicationID, tenantID, applicantID, reviewerID, note string,
) FinancingApplicationRejected {
	return FinancingApplicationRejected{
		BaseEvent:   events.NewBaseEvent("financing.application.rejected", applicationID, "FinancingApplication", tenantID),
		ApplicantID: applicantID,
		ReviewerID:  reviewerID,
		Note:        note,
	}
}

// FinancingApplicationDisbursed is raised when funds are paid out through
// the mobile-money gateway.
type FinancingApplicationDisbursed struct {
	events.BaseEvent
	ApplicantID       string          `json:"applicant_id"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	ProviderReference string          `json:"provider_reference"`
}

func NewFinancingApplicationDisbursed(
	applicationID, tenantID, applicantID string,
	amount decimal.Decimal, currency, providerReference string,
) FinancingApplicationDisbursed {
	return FinancingApplicationDisbursed{
		BaseEvent:         events.NewBaseEvent("financing.application.disbursed", applicationID, "FinancingApplication", tenantID),
		ApplicantID:       applicantID,
		Amount:            amount,
		Currency:          currency,
		ProviderReference: providerReference,
	}
}
