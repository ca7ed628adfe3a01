package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/service"
)

// --- Mock implementations ---

type mockAccountStore struct {
	findFunc func(ctx context.Context, applicantID string) (port.Account, error)
}

func (m *mockAccountStore) FindByApplicantID(ctx context.Context, applicantID string) (port.Account, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, applicantID)
	}
	return port.Account{ApplicantID: applicantID}, nil
}

type mockOperationStore struct {
	operations []port.Operation
	err        error
	calls      atomic.Int32
}

func (m *mockOperationStore) ListByApplicant(_ context.Context, _ string) ([]port.Operation, error) {
	m.calls.Add(1)
	return m.operations, m.err
}

type mockProjectStore struct {
	projects []port.Project
	err      error
}

func (m *mockProjectStore) ListByApplicant(_ context.Context, _ string) ([]port.Project, error) {
	return m.projects, m.err
}

type mockSavingsStore struct {
	goals []port.SavingsGoal
	err   error
}

func (m *mockSavingsStore) ListByApplicant(_ context.Context, _ string) ([]port.SavingsGoal, error) {
	return m.goals, m.err
}

func newAggregator(
	accounts *mockAccountStore,
	operations *mockOperationStore,
	projects *mockProjectStore,
	savings *mockSavingsStore,
) *service.ProfileAggregator {
	return service.NewProfileAggregator(accounts, operations, projects, savings)
}

// --- Tests ---

func TestProfileAggregator_FullHistory(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	aggregator := newAggregator(
		&mockAccountStore{findFunc: func(_ context.Context, id string) (port.Account, error) {
			return port.Account{ApplicantID: id, CreatedAt: &createdAt}, nil
		}},
		&mockOperationStore{operations: []port.Operation{
			{Type: port.OperationIncome, Amount: decimal.NewFromInt(300_000)},
			{Type: port.OperationIncome, Amount: decimal.NewFromInt(100_000)},
			{Type: port.OperationExpense, Amount: decimal.NewFromInt(80_000)},
			{Type: port.OperationExpense, Amount: decimal.NewFromInt(20_000)},
		}},
		&mockProjectStore{projects: []port.Project{
			{Status: port.ProjectStatusCompleted},
			{Status: port.ProjectStatusCompleted},
			{Status: "ACTIVE"},
		}},
		&mockSavingsStore{goals: []port.SavingsGoal{
			{CurrentAmount: decimal.NewFromInt(50_000), TargetAmount: decimal.NewFromInt(200_000)},
			{CurrentAmount: decimal.NewFromInt(25_000), TargetAmount: decimal.NewFromInt(100_000)},
		}},
	)

	profile, err := aggregator.BuildProfile(context.Background(), "applicant-1", now)
	require.NoError(t, err)

	assert.Equal(t, 4, profile.OperationsCount)
	assert.True(t, profile.TotalIncome.Equal(decimal.NewFromInt(400_000)))
	assert.True(t, profile.TotalExpenses.Equal(decimal.NewFromInt(100_000)))
	assert.Equal(t, 3, profile.ProjectsCount)
	assert.Equal(t, 2, profile.CompletedProjectsCount)
	assert.True(t, profile.SavingsAmount.Equal(decimal.NewFromInt(75_000)))
	assert.Equal(t, 365, profile.AccountAgeDays)
	assert.Equal(t, 4, profile.TransactionFrequency)
	// (400000 + 100000) / 4
	assert.True(t, profile.AverageTransactionAmount.Equal(decimal.NewFromInt(125_000)))
}

func TestProfileAggregator_ZeroHistory(t *testing.T) {
	aggregator := newAggregator(
		&mockAccountStore{},
		&mockOperationStore{},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	profile, err := aggregator.BuildProfile(context.Background(), "applicant-2", time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, 0, profile.OperationsCount)
	assert.True(t, profile.TotalIncome.IsZero())
	assert.True(t, profile.TotalExpenses.IsZero())
	assert.Equal(t, 0, profile.ProjectsCount)
	assert.True(t, profile.SavingsAmount.IsZero())
	assert.Equal(t, 0, profile.AccountAgeDays)
	assert.True(t, profile.AverageTransactionAmount.IsZero())
}

func TestProfileAggregator_MissingCreatedAtCountsAsNew(t *testing.T) {
	aggregator := newAggregator(
		&mockAccountStore{findFunc: func(_ context.Context, id string) (port.Account, error) {
			return port.Account{ApplicantID: id, CreatedAt: nil}, nil
		}},
		&mockOperationStore{},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	profile, err := aggregator.BuildProfile(context.Background(), "applicant-3", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, profile.AccountAgeDays)
}

func TestProfileAggregator_MissingIdentity(t *testing.T) {
	aggregator := newAggregator(
		&mockAccountStore{findFunc: func(_ context.Context, _ string) (port.Account, error) {
			return port.Account{}, port.ErrApplicantNotFound
		}},
		&mockOperationStore{},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	_, err := aggregator.BuildProfile(context.Background(), "nobody", time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, port.ErrApplicantNotFound)
	assert.False(t, port.IsDataAccess(err))
}

func TestProfileAggregator_StoreFailure(t *testing.T) {
	aggregator := newAggregator(
		&mockAccountStore{},
		&mockOperationStore{err: fmt.Errorf("connection reset")},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	_, err := aggregator.BuildProfile(context.Background(), "applicant-4", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, port.IsDataAccess(err))
	assert.False(t, errors.Is(err, port.ErrApplicantNotFound))
}

func TestProfileAggregator_WrappedDataAccessErrorNotDoubleWrapped(t *testing.T) {
	cause := fmt.Errorf("timeout")
	original := port.NewDataAccessError("list operations", cause)

	aggregator := newAggregator(
		&mockAccountStore{},
		&mockOperationStore{err: original},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	_, err := aggregator.BuildProfile(context.Background(), "applicant-5", time.Now().UTC())
	require.Error(t, err)

	var dae *port.DataAccessError
	require.True(t, errors.As(err, &dae))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list operations", dae.Op)
}

func TestProfileAggregator_NegativeStoredAmountIsDataAccessError(t *testing.T) {
	// A negative stored amount can only come from a corrupt row; the profile
	// must be rejected as a retryable data-access failure, not scored.
	aggregator := newAggregator(
		&mockAccountStore{},
		&mockOperationStore{operations: []port.Operation{
			{Type: port.OperationExpense, Amount: decimal.NewFromInt(-5_000)},
		}},
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	_, err := aggregator.BuildProfile(context.Background(), "applicant-1", time.Now().UTC())
	require.Error(t, err)
	assert.True(t, port.IsDataAccess(err))
}

func TestProfileAggregator_EachStoreReadOnce(t *testing.T) {
	operations := &mockOperationStore{}

	aggregator := newAggregator(
		&mockAccountStore{},
		operations,
		&mockProjectStore{},
		&mockSavingsStore{},
	)

	_, err := aggregator.BuildProfile(context.Background(), "applicant-6", time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, int32(1), operations.calls.Load())
}
