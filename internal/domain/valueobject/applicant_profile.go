package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ApplicantProfile is a point-in-time aggregation of an applicant's recorded
// activity: income and expense operations, funding projects, savings goals,
// and account age. It is assembled fresh for every scoring request and
// discarded once the score is produced; it has no identity or lifecycle of
// its own.
type ApplicantProfile struct {
	// OperationsCount is the number of recorded income/expense operations.
	OperationsCount int

	// TotalIncome and TotalExpenses are sums over the applicant's operations,
	// in the platform's minor currency unit (XOF has no subunit).
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal

	// ProjectsCount is the number of tracked funding projects;
	// CompletedProjectsCount is how many of them reached completion.
	ProjectsCount          int
	CompletedProjectsCount int

	// SavingsAmount is the sum of current amounts across all savings goals.
	SavingsAmount decimal.Decimal

	// AccountAgeDays is the number of whole days since account creation.
	// Zero when the creation timestamp is unknown.
	AccountAgeDays int

	// TransactionFrequency mirrors OperationsCount today but is kept as a
	// separate field so a per-period frequency can be introduced without
	// touching the scoring formulas.
	TransactionFrequency int

	// AverageTransactionAmount is (TotalIncome+TotalExpenses)/OperationsCount,
	// zero when there are no operations.
	AverageTransactionAmount decimal.Decimal
}

// Balance returns TotalIncome - TotalExpenses. It may be negative.
func (p ApplicantProfile) Balance() decimal.Decimal {
	return p.TotalIncome.Sub(p.TotalExpenses)
}

// Validate checks the structural invariants of a profile.
func (p ApplicantProfile) Validate() error {
	if p.OperationsCount < 0 || p.ProjectsCount < 0 || p.CompletedProjectsCount < 0 ||
		p.AccountAgeDays < 0 || p.TransactionFrequency < 0 {
		return fmt.Errorf("profile counts must not be negative")
	}
	if p.CompletedProjectsCount > p.ProjectsCount {
		return fmt.Errorf("completed projects (%d) exceed total projects (%d)",
			p.CompletedProjectsCount, p.ProjectsCount)
	}
	if p.TotalIncome.IsNegative() || p.TotalExpenses.IsNegative() ||
		p.SavingsAmount.IsNegative() || p.AverageTransactionAmount.IsNegative() {
		return fmt.Errorf("profile amounts must not be negative")
	}
	return nil
}
