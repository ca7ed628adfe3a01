package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/domain/service"
	"github.com/moroapp/moro/internal/domain/valueobject"
)

func TestScoringEngine_EmptyProfile(t *testing.T) {
	engine := service.NewScoringEngine()

	result := engine.Score(valueobject.ApplicantProfile{}, decimal.NewFromInt(100_000))

	// No expenses on file saturates the ratio component at 50; the balance
	// component is zero. No project history is neutral.
	assert.InDelta(t, 50, result.Factors.FinancialStability, 0.001)
	assert.InDelta(t, 0, result.Factors.BusinessActivity, 0.001)
	assert.InDelta(t, 0, result.Factors.SavingsBehavior, 0.001)
	assert.InDelta(t, 50, result.Factors.ProjectSuccessRate, 0.001)
	assert.InDelta(t, 0, result.Factors.AccountMaturity, 0.001)

	// 50*0.30 + 50*0.15 = 22.5, no amount adjustment without income.
	assert.Equal(t, 23, result.TotalScore)
	assert.True(t, result.RiskLevel.Equal(valueobject.RiskHigh))
	assert.True(t, result.Recommendation.Equal(valueobject.RecommendReject))
}

func TestScoringEngine_StrongProfile(t *testing.T) {
	engine := service.NewScoringEngine()

	profile := valueobject.ApplicantProfile{
		OperationsCount:          80,
		TotalIncome:              decimal.NewFromInt(1_000_000),
		TotalExpenses:            decimal.NewFromInt(200_000),
		ProjectsCount:            4,
		CompletedProjectsCount:   4,
		SavingsAmount:            decimal.NewFromInt(600_000),
		AccountAgeDays:           400,
		TransactionFrequency:     80,
		AverageTransactionAmount: decimal.NewFromInt(15_000),
	}

	result := engine.Score(profile, decimal.NewFromInt(200_000))

	assert.InDelta(t, 100, result.Factors.FinancialStability, 0.001)
	assert.InDelta(t, 73, result.Factors.BusinessActivity, 0.001)
	assert.InDelta(t, 100, result.Factors.SavingsBehavior, 0.001)
	assert.InDelta(t, 100, result.Factors.ProjectSuccessRate, 0.001)
	assert.InDelta(t, 100, result.Factors.AccountMaturity, 0.001)

	// Base 93.25, the comfortable-amount bonus pushes it past the cap.
	assert.Equal(t, 100, result.TotalScore)
	assert.True(t, result.RiskLevel.Equal(valueobject.RiskLow))
	assert.True(t, result.Recommendation.Equal(valueobject.RecommendApprove))
}

// stabilityOnlyProfile yields financialStability=100, projectSuccessRate=50
// and zeroes elsewhere, for a base score of 37.5 before amount adjustment.
func stabilityOnlyProfile() valueobject.ApplicantProfile {
	return valueobject.ApplicantProfile{
		TotalIncome: decimal.NewFromInt(100_000),
	}
}

func TestScoringEngine_AmountAdjustmentBands(t *testing.T) {
	engine := service.NewScoringEngine()

	tests := []struct {
		name      string
		requested int64
		want      int
	}{
		{"severe penalty above 3x income", 400_000, 26},   // 37.5 * 0.70
		{"elevated penalty above 2x income", 250_000, 32}, // 37.5 * 0.85
		{"exactly 3x income takes elevated band", 300_000, 32},
		{"no adjustment inside comfortable band", 100_000, 38},
		{"exactly half income is not adjusted", 50_000, 38},
		{"bonus below half income", 40_000, 41}, // 37.5 * 1.10
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Score(stabilityOnlyProfile(), decimal.NewFromInt(tt.requested))
			assert.Equal(t, tt.want, result.TotalScore)
		})
	}
}

func TestScoringEngine_ZeroIncomeSkipsAdjustment(t *testing.T) {
	engine := service.NewScoringEngine()

	small := engine.Score(valueobject.ApplicantProfile{}, decimal.NewFromInt(1))
	huge := engine.Score(valueobject.ApplicantProfile{}, decimal.NewFromInt(100_000_000))

	assert.Equal(t, small.TotalScore, huge.TotalScore)
}

func TestScoringEngine_NegativeBalanceClampsToZero(t *testing.T) {
	engine := service.NewScoringEngine()

	profile := valueobject.ApplicantProfile{
		OperationsCount:      10,
		TotalIncome:          decimal.NewFromInt(10_000),
		TotalExpenses:        decimal.NewFromInt(510_000),
		TransactionFrequency: 10,
	}

	result := engine.Score(profile, decimal.NewFromInt(50_000))

	assert.InDelta(t, 0, result.Factors.FinancialStability, 0.001)
	assert.GreaterOrEqual(t, result.TotalScore, 0)
}

func TestScoringEngine_FactorsClampedToHundred(t *testing.T) {
	engine := service.NewScoringEngine()

	profile := valueobject.ApplicantProfile{
		OperationsCount:          10_000,
		TotalIncome:              decimal.NewFromInt(100_000_000),
		TotalExpenses:            decimal.NewFromInt(1),
		ProjectsCount:            10,
		CompletedProjectsCount:   10,
		SavingsAmount:            decimal.NewFromInt(100_000_000),
		AccountAgeDays:           10_000,
		TransactionFrequency:     10_000,
		AverageTransactionAmount: decimal.NewFromInt(10_000_000),
	}

	result := engine.Score(profile, decimal.NewFromInt(1))

	for _, factor := range []float64{
		result.Factors.FinancialStability,
		result.Factors.BusinessActivity,
		result.Factors.SavingsBehavior,
		result.Factors.ProjectSuccessRate,
		result.Factors.AccountMaturity,
	} {
		assert.LessOrEqual(t, factor, 100.0)
		assert.GreaterOrEqual(t, factor, 0.0)
	}
	assert.Equal(t, 100, result.TotalScore)
}

func TestScoringEngine_NoProjectHistoryIsNeutral(t *testing.T) {
	engine := service.NewScoringEngine()

	none := engine.Score(valueobject.ApplicantProfile{}, decimal.NewFromInt(1000))
	failed := engine.Score(valueobject.ApplicantProfile{ProjectsCount: 5}, decimal.NewFromInt(1000))

	assert.InDelta(t, 50, none.Factors.ProjectSuccessRate, 0.001)
	assert.InDelta(t, 0, failed.Factors.ProjectSuccessRate, 0.001)
}

func TestScoringEngine_SavingsPresenceBonus(t *testing.T) {
	engine := service.NewScoringEngine()

	withSavings := engine.Score(valueobject.ApplicantProfile{
		SavingsAmount: decimal.NewFromInt(1),
	}, decimal.NewFromInt(1000))

	// Any savings at all earns the flat presence bonus.
	assert.InDelta(t, 40, withSavings.Factors.SavingsBehavior, 0.01)
}

func TestScoringEngine_Deterministic(t *testing.T) {
	engine := service.NewScoringEngine()

	profile := valueobject.ApplicantProfile{
		OperationsCount:          12,
		TotalIncome:              decimal.NewFromInt(420_000),
		TotalExpenses:            decimal.NewFromInt(180_000),
		ProjectsCount:            3,
		CompletedProjectsCount:   2,
		SavingsAmount:            decimal.NewFromInt(75_000),
		AccountAgeDays:           150,
		TransactionFrequency:     12,
		AverageTransactionAmount: decimal.NewFromInt(50_000),
	}
	amount := decimal.NewFromInt(300_000)

	first := engine.Score(profile, amount)
	second := engine.Score(profile, amount)

	require.Equal(t, first.TotalScore, second.TotalScore)
	assert.Equal(t, first.Factors, second.Factors)
	assert.Equal(t, first.Reasoning, second.Reasoning)
}

func TestScoringEngine_MoreSavingsNeverLowersScore(t *testing.T) {
	engine := service.NewScoringEngine()
	amount := decimal.NewFromInt(50_000)

	prev := -1
	for _, savings := range []int64{0, 10_000, 100_000, 500_000, 1_000_000} {
		result := engine.Score(valueobject.ApplicantProfile{
			SavingsAmount: decimal.NewFromInt(savings),
		}, amount)
		assert.GreaterOrEqual(t, result.TotalScore, prev, "savings %d", savings)
		prev = result.TotalScore
	}
}

func TestScoringEngine_RiskTierMatchesRecommendation(t *testing.T) {
	engine := service.NewScoringEngine()

	profiles := []valueobject.ApplicantProfile{
		{},
		stabilityOnlyProfile(),
		{
			OperationsCount:          80,
			TotalIncome:              decimal.NewFromInt(1_000_000),
			TotalExpenses:            decimal.NewFromInt(200_000),
			ProjectsCount:            4,
			CompletedProjectsCount:   4,
			SavingsAmount:            decimal.NewFromInt(600_000),
			AccountAgeDays:           400,
			TransactionFrequency:     80,
			AverageTransactionAmount: decimal.NewFromInt(15_000),
		},
	}

	for _, profile := range profiles {
		result := engine.Score(profile, decimal.NewFromInt(100_000))
		assert.True(t, result.Recommendation.Equal(valueobject.RecommendationForRisk(result.RiskLevel)))
	}
}
