package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/domain/event"
	"github.com/moroapp/moro/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Activity store ports (driven/secondary adapters)
//
// These four stores feed the profile aggregator. Each read is scoped to one
// applicant and is read-only; they are independent of each other.
// ---------------------------------------------------------------------------

// OperationType distinguishes income from expense operations.
type OperationType string

const (
	OperationIncome  OperationType = "INCOME"
	OperationExpense OperationType = "EXPENSE"
)

// Operation is a recorded income or expense transaction.
type Operation struct {
	Type   OperationType
	Amount decimal.Decimal
}

// Project is a tracked funding goal with a lifecycle status.
type Project struct {
	Status string
}

// ProjectStatusCompleted marks a project that reached completion.
const ProjectStatusCompleted = "COMPLETED"

// SavingsGoal is a tracked accumulation target with a current amount.
type SavingsGoal struct {
	CurrentAmount decimal.Decimal
	TargetAmount  decimal.Decimal
}

// Account is the identity record for an applicant. CreatedAt is nil when the
// creation timestamp is not recorded.
type Account struct {
	ApplicantID string
	Email       string
	PhoneNumber string
	CreatedAt   *time.Time
}

// AccountStore resolves applicant identities.
type AccountStore interface {
	// FindByApplicantID returns ErrApplicantNotFound when no account exists
	// for the given applicant.
	FindByApplicantID(ctx context.Context, applicantID string) (Account, error)
}

// OperationStore lists an applicant's recorded operations.
type OperationStore interface {
	ListByApplicant(ctx context.Context, applicantID string) ([]Operation, error)
}

// ProjectStore lists an applicant's funding projects.
type ProjectStore interface {
	ListByApplicant(ctx context.Context, applicantID string) ([]Project, error)
}

// SavingsStore lists an applicant's savings goals.
type SavingsStore interface {
	ListByApplicant(ctx context.Context, applicantID string) ([]SavingsGoal, error)
}

// ---------------------------------------------------------------------------
// Repository ports
// ---------------------------------------------------------------------------

// FinancingApplicationRepository persists and retrieves financing applications.
type FinancingApplicationRepository interface {
	Save(ctx context.Context, app model.FinancingApplication) error
	FindByID(ctx context.Context, tenantID, id string) (model.FinancingApplication, error)
	FindByApplicantID(ctx context.Context, tenantID, applicantID string) ([]model.FinancingApplication, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// TransferRequest describes a mobile-money payout to an applicant.
type TransferRequest struct {
	Reference   string
	PhoneNumber string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// TransferStatus is the aggregator-side state of a transfer.
type TransferStatus string

const (
	TransferPending  TransferStatus = "PENDING"
	TransferAccepted TransferStatus = "ACCEPTED"
	TransferRefused  TransferStatus = "REFUSED"
)

// TransferReceipt is the gateway's acknowledgement of an initiated transfer.
type TransferReceipt struct {
	ProviderReference string
	Status            TransferStatus
}

// PaymentGateway initiates mobile-money transfers through a third-party
// aggregator and reports their status.
type PaymentGateway interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (TransferReceipt, error)
	GetTransferStatus(ctx context.Context, reference string) (TransferStatus, error)
}

// Email is a transactional message to an applicant.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers transactional email. A failed send must never invalidate
// the decision that triggered it.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// CallbackRegistry records payment-gateway webhook deliveries so retried
// callbacks are processed at most once.
type CallbackRegistry interface {
	// MarkProcessed records the callback id and reports whether this was the
	// first delivery.
	MarkProcessed(ctx context.Context, callbackID string) (bool, error)

	// Release forgets a callback id so the gateway's redelivery is treated
	// as a first delivery again. Called when processing fails after the id
	// was marked.
	Release(ctx context.Context, callbackID string) error
}
