package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/domain/valueobject"
)

func TestRiskLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.RiskLevel
	}{
		{100, valueobject.RiskLow},
		{70, valueobject.RiskLow},
		{69, valueobject.RiskMedium},
		{50, valueobject.RiskMedium},
		{49, valueobject.RiskHigh},
		{23, valueobject.RiskHigh},
		{0, valueobject.RiskHigh},
	}

	for _, tt := range tests {
		got := valueobject.RiskLevelForScore(tt.score)
		assert.True(t, got.Equal(tt.want), "score %d: got %s, want %s", tt.score, got, tt.want)
	}
}

func TestRecommendationForRisk(t *testing.T) {
	assert.True(t, valueobject.RecommendationForRisk(valueobject.RiskLow).Equal(valueobject.RecommendApprove))
	assert.True(t, valueobject.RecommendationForRisk(valueobject.RiskMedium).Equal(valueobject.RecommendReview))
	assert.True(t, valueobject.RecommendationForRisk(valueobject.RiskHigh).Equal(valueobject.RecommendReject))
}

func TestNewRiskLevel(t *testing.T) {
	low, err := valueobject.NewRiskLevel("low")
	require.NoError(t, err)
	assert.True(t, low.Equal(valueobject.RiskLow))
	assert.Equal(t, "low", low.String())

	_, err = valueobject.NewRiskLevel("LOW")
	assert.Error(t, err)

	_, err = valueobject.NewRiskLevel("")
	assert.Error(t, err)
}

func TestNewRecommendation(t *testing.T) {
	approve, err := valueobject.NewRecommendation("approve")
	require.NoError(t, err)
	assert.True(t, approve.Equal(valueobject.RecommendApprove))
	assert.Equal(t, "approve", approve.String())

	_, err = valueobject.NewRecommendation("maybe")
	assert.Error(t, err)
}

func TestFinancingApplicationStatus(t *testing.T) {
	status, err := valueobject.NewFinancingApplicationStatus("UNDER_REVIEW")
	require.NoError(t, err)
	assert.True(t, status.Equal(valueobject.FinancingStatusUnderReview))
	assert.False(t, status.IsTerminal())

	_, err = valueobject.NewFinancingApplicationStatus("PENDING")
	assert.Error(t, err)

	assert.True(t, valueobject.FinancingStatusRejected.IsTerminal())
	assert.True(t, valueobject.FinancingStatusDisbursed.IsTerminal())
	assert.False(t, valueobject.FinancingStatusSubmitted.IsTerminal())
	assert.False(t, valueobject.FinancingStatusApproved.IsTerminal())

	assert.True(t, valueobject.FinancingApplicationStatus{}.IsZero())
	assert.False(t, valueobject.FinancingStatusSubmitted.IsZero())
}
