package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/domain/port"
)

// AccountStore implements port.AccountStore.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a new PostgreSQL-backed account store.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// FindByApplicantID resolves the identity record for an applicant.
func (s *AccountStore) FindByApplicantID(ctx context.Context, applicantID string) (port.Account, error) {
	const query = `
		SELECT applicant_id, email, phone_number, created_at
		FROM accounts
		WHERE applicant_id = $1
	`
	var (
		account   port.Account
		createdAt *time.Time
	)
	err := s.pool.QueryRow(ctx, query, applicantID).Scan(
		&account.ApplicantID, &account.Email, &account.PhoneNumber, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return port.Account{}, port.ErrApplicantNotFound
		}
		return port.Account{}, port.NewDataAccessError("find account", err)
	}
	account.CreatedAt = createdAt
	return account, nil
}

// OperationStore implements port.OperationStore.
type OperationStore struct {
	pool *pgxpool.Pool
}

// NewOperationStore creates a new PostgreSQL-backed operation store.
func NewOperationStore(pool *pgxpool.Pool) *OperationStore {
	return &OperationStore{pool: pool}
}

// ListByApplicant returns all recorded operations for an applicant.
func (s *OperationStore) ListByApplicant(ctx context.Context, applicantID string) ([]port.Operation, error) {
	const query = `
		SELECT type, amount
		FROM operations
		WHERE applicant_id = $1
	`
	rows, err := s.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, port.NewDataAccessError("query operations", err)
	}
	defer rows.Close()

	var result []port.Operation
	for rows.Next() {
		var (
			typeStr   string
			amountStr string
		)
		if err := rows.Scan(&typeStr, &amountStr); err != nil {
			return nil, port.NewDataAccessError("scan operation", err)
		}
		op, err := parseOperation(typeStr, amountStr)
		if err != nil {
			return nil, err
		}
		result = append(result, op)
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewDataAccessError("iterate operations", err)
	}
	return result, nil
}

// parseOperation rebuilds an operation from its stored columns. A malformed
// amount is a corrupt row and surfaces as a retryable data-access failure.
func parseOperation(typeStr, amountStr string) (port.Operation, error) {
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return port.Operation{}, port.NewDataAccessError("parse operation amount", err)
	}
	return port.Operation{
		Type:   port.OperationType(typeStr),
		Amount: amount,
	}, nil
}

// ProjectStore implements port.ProjectStore.
type ProjectStore struct {
	pool *pgxpool.Pool
}

// NewProjectStore creates a new PostgreSQL-backed project store.
func NewProjectStore(pool *pgxpool.Pool) *ProjectStore {
	return &ProjectStore{pool: pool}
}

// ListByApplicant returns all funding projects for an applicant.
func (s *ProjectStore) ListByApplicant(ctx context.Context, applicantID string) ([]port.Project, error) {
	const query = `
		SELECT status
		FROM projects
		WHERE applicant_id = $1
	`
	rows, err := s.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, port.NewDataAccessError("query projects", err)
	}
	defer rows.Close()

	var result []port.Project
	for rows.Next() {
		var statusStr string
		if err := rows.Scan(&statusStr); err != nil {
			return nil, port.NewDataAccessError("scan project", err)
		}
		result = append(result, port.Project{Status: statusStr})
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewDataAccessError("iterate projects", err)
	}
	return result, nil
}

// SavingsStore implements port.SavingsStore.
type SavingsStore struct {
	pool *pgxpool.Pool
}

// NewSavingsStore creates a new PostgreSQL-backed savings store.
func NewSavingsStore(pool *pgxpool.Pool) *SavingsStore {
	return &SavingsStore{pool: pool}
}

// ListByApplicant returns all savings goals for an applicant.
func (s *SavingsStore) ListByApplicant(ctx context.Context, applicantID string) ([]port.SavingsGoal, error) {
	const query = `
		SELECT current_amount, target_amount
		FROM savings_goals
		WHERE applicant_id = $1
	`
	rows, err := s.pool.Query(ctx, query, applicantID)
	if err != nil {
		return nil, port.NewDataAccessError("query savings goals", err)
	}
	defer rows.Close()

	var result []port.SavingsGoal
	for rows.Next() {
		var currentStr, targetStr string
		if err := rows.Scan(&currentStr, &targetStr); err != nil {
			return nil, port.NewDataAccessError("scan savings goal", err)
		}
		goal, err := parseSavingsGoal(currentStr, targetStr)
		if err != nil {
			return nil, err
		}
		result = append(result, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, port.NewDataAccessError("iterate savings goals", err)
	}
	return result, nil
}

func parseSavingsGoal(currentStr, targetStr string) (port.SavingsGoal, error) {
	current, err := decimal.NewFromString(currentStr)
	if err != nil {
		return port.SavingsGoal{}, port.NewDataAccessError("parse savings amount", err)
	}
	target, err := decimal.NewFromString(targetStr)
	if err != nil {
		return port.SavingsGoal{}, port.NewDataAccessError("parse savings target", err)
	}
	return port.SavingsGoal{CurrentAmount: current, TargetAmount: target}, nil
}
