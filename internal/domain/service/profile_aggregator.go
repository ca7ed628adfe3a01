package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ProfileAggregator – assembles an ApplicantProfile from the activity stores
// ---------------------------------------------------------------------------

// ProfileAggregator reads an applicant's account, operations, projects, and
// savings goals and folds them into a scoring profile. The four reads are
// independent and issued concurrently; the profile is produced only once all
// of them have completed.
type ProfileAggregator struct {
	accounts   port.AccountStore
	operations port.OperationStore
	projects   port.ProjectStore
	savings    port.SavingsStore
}

// NewProfileAggregator wires the four activity stores.
func NewProfileAggregator(
	accounts port.AccountStore,
	operations port.OperationStore,
	projects port.ProjectStore,
	savings port.SavingsStore,
) *ProfileAggregator {
	return &ProfileAggregator{
		accounts:   accounts,
		operations: operations,
		projects:   projects,
		savings:    savings,
	}
}

// BuildProfile aggregates the applicant's history as of now.
//
// An applicant whose account exists but who has no recorded activity yields
// a valid all-zero profile. An unresolvable applicant yields
// port.ErrApplicantNotFound; any store failure yields a port.DataAccessError.
func (a *ProfileAggregator) BuildProfile(ctx context.Context, applicantID string, now time.Time) (valueobject.ApplicantProfile, error) {
	var (
		account    port.Account
		operations []port.Operation
		projects   []port.Project
		savings    []port.SavingsGoal
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		acc, err := a.accounts.FindByApplicantID(gctx, applicantID)
		if err != nil {
			if errors.Is(err, port.ErrApplicantNotFound) {
				return err
			}
			return wrapDataAccess("find account", err)
		}
		account = acc
		return nil
	})
	g.Go(func() error {
		ops, err := a.operations.ListByApplicant(gctx, applicantID)
		if err != nil {
			return wrapDataAccess("list operations", err)
		}
		operations = ops
		return nil
	})
	g.Go(func() error {
		prj, err := a.projects.ListByApplicant(gctx, applicantID)
		if err != nil {
			return wrapDataAccess("list projects", err)
		}
		projects = prj
		return nil
	})
	g.Go(func() error {
		sav, err := a.savings.ListByApplicant(gctx, applicantID)
		if err != nil {
			return wrapDataAccess("list savings goals", err)
		}
		savings = sav
		return nil
	})

	if err := g.Wait(); err != nil {
		return valueobject.ApplicantProfile{}, err
	}

	profile := assembleProfile(account, operations, projects, savings, now)
	if err := profile.Validate(); err != nil {
		// Only malformed stored rows (negative amounts) can get here.
		return valueobject.ApplicantProfile{}, wrapDataAccess("assemble profile", err)
	}
	return profile, nil
}

func assembleProfile(
	account port.Account,
	operations []port.Operation,
	projects []port.Project,
	savings []port.SavingsGoal,
	now time.Time,
) valueobject.ApplicantProfile {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	for _, op := range operations {
		switch op.Type {
		case port.OperationIncome:
			totalIncome = totalIncome.Add(op.Amount)
		case port.OperationExpense:
			totalExpenses = totalExpenses.Add(op.Amount)
		}
	}

	completed := 0
	for _, p := range projects {
		if p.Status == port.ProjectStatusCompleted {
			completed++
		}
	}

	savingsTotal := decimal.Zero
	for _, s := range savings {
		savingsTotal = savingsTotal.Add(s.CurrentAmount)
	}

	// An account with no recorded creation timestamp counts as brand new.
	accountAgeDays := 0
	if account.CreatedAt != nil {
		if days := int(now.Sub(*account.CreatedAt).Hours() / 24); days > 0 {
			accountAgeDays = days
		}
	}

	operationsCount := len(operations)
	avgAmount := decimal.Zero
	if operationsCount > 0 {
		avgAmount = totalIncome.Add(totalExpenses).Div(decimal.NewFromInt(int64(operationsCount)))
	}

	return valueobject.ApplicantProfile{
		OperationsCount:          operationsCount,
		TotalIncome:              totalIncome,
		TotalExpenses:            totalExpenses,
		ProjectsCount:            len(projects),
		CompletedProjectsCount:   completed,
		SavingsAmount:            savingsTotal,
		AccountAgeDays:           accountAgeDays,
		TransactionFrequency:     operationsCount,
		AverageTransactionAmount: avgAmount,
	}
}

func wrapDataAccess(op string, err error) error {
	if port.IsDataAccess(err) {
		return err
	}
	return port.NewDataAccessError(op, err)
}
