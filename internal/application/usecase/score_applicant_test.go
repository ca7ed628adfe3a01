package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/application/usecase"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/service"
)

func TestScoreApplicant_RequiresApplicantID(t *testing.T) {
	uc := usecase.NewScoreApplicantUseCase(emptyAggregator(), service.NewScoringEngine())

	_, err := uc.Execute(context.Background(), dto.ScoreRequest{
		RequestedAmount: decimal.NewFromInt(10_000),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applicant ID is required")
}

func TestScoreApplicant_RejectsNonPositiveAmountBeforeAnyRead(t *testing.T) {
	// The failing aggregator would error if any store were touched.
	uc := usecase.NewScoreApplicantUseCase(failingAggregator(), service.NewScoringEngine())

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
		_, err := uc.Execute(context.Background(), dto.ScoreRequest{
			ApplicantID:     "applicant-1",
			RequestedAmount: amount,
		})
		require.ErrorIs(t, err, usecase.ErrInvalidAmount)
	}
}

func TestScoreApplicant_EmptyHistory(t *testing.T) {
	uc := usecase.NewScoreApplicantUseCase(emptyAggregator(), service.NewScoringEngine())

	resp, err := uc.Execute(context.Background(), dto.ScoreRequest{
		ApplicantID:     "applicant-1",
		RequestedAmount: decimal.NewFromInt(500_000),
	})
	require.NoError(t, err)

	assert.Equal(t, "applicant-1", resp.ApplicantID)
	assert.Equal(t, 23, resp.TotalScore)
	assert.Equal(t, "high", resp.RiskLevel)
	assert.Equal(t, "reject", resp.Recommendation)
	assert.InDelta(t, 50.0, resp.Factors.FinancialStability, 0.01)
	assert.InDelta(t, 0.0, resp.Factors.BusinessActivity, 0.01)
	assert.NotEmpty(t, resp.Reasoning)
}

func TestScoreApplicant_UnknownApplicant(t *testing.T) {
	uc := usecase.NewScoreApplicantUseCase(missingAggregator(), service.NewScoringEngine())

	_, err := uc.Execute(context.Background(), dto.ScoreRequest{
		ApplicantID:     "ghost",
		RequestedAmount: decimal.NewFromInt(10_000),
	})
	require.ErrorIs(t, err, port.ErrApplicantNotFound)
}
