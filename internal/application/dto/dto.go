package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// ScoreRequest asks for an ad-hoc eligibility score without creating an
// application.
type ScoreRequest struct {
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
}

// SubmitApplicationRequest carries the data needed to submit a financing
// application.
type SubmitApplicationRequest struct {
	TenantID        string          `json:"tenant_id"`
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose"`
	PhoneNumber     string          `json:"phone_number"`
}

// ReviewApplicationRequest carries a reviewer's decision.
type ReviewApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
	ReviewerID    string `json:"reviewer_id"`
	Approve       bool   `json:"approve"`
	Note          string `json:"note"`
}

// DisburseApplicationRequest triggers a mobile-money payout for an approved
// application.
type DisburseApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	TenantID      string `json:"tenant_id"`
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest identifies an applicant whose applications to list.
type ListApplicationsRequest struct {
	TenantID    string `json:"tenant_id"`
	ApplicantID string `json:"applicant_id"`
}

// PaymentCallbackRequest is the payload the mobile-money aggregator posts to
// the webhook endpoint when a transfer settles.
type PaymentCallbackRequest struct {
	CallbackID string `json:"callback_id"`
	TenantID   string `json:"tenant_id"`
	Reference  string `json:"reference"`
	Status     string `json:"status"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoringFactorsResponse is the external representation of the five
// sub-scores.
type ScoringFactorsResponse struct {
	FinancialStability float64 `json:"financial_stability"`
	BusinessActivity   float64 `json:"business_activity"`
	SavingsBehavior    float64 `json:"savings_behavior"`
	ProjectSuccessRate float64 `json:"project_success_rate"`
	AccountMaturity    float64 `json:"account_maturity"`
}

// ScoreResponse is the external representation of a scoring result.
type ScoreResponse struct {
	ApplicantID    string                 `json:"applicant_id"`
	TotalScore     int                    `json:"total_score"`
	Factors        ScoringFactorsResponse `json:"factors"`
	RiskLevel      string                 `json:"risk_level"`
	Recommendation string                 `json:"recommendation"`
	Reasoning      []string               `json:"reasoning"`
}

// FinancingApplicationResponse is the external representation of an
// application.
type FinancingApplicationResponse struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	ApplicantID     string          `json:"applicant_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Currency        string          `json:"currency"`
	Purpose         string          `json:"purpose"`
	Status          string          `json:"status"`
	TotalScore      int             `json:"total_score"`
	RiskLevel       string          `json:"risk_level"`
	Recommendation  string          `json:"recommendation"`
	Reasoning       []string        `json:"reasoning"`
	ReviewerID      string          `json:"reviewer_id,omitempty"`
	ReviewNote      string          `json:"review_note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
