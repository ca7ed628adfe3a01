package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskLevel – immutable value object
// ---------------------------------------------------------------------------

// RiskLevel is the coarse risk tier derived from a creditworthiness score.
type RiskLevel struct {
	value string
}

const (
	riskLow    = "low"
	riskMedium = "medium"
	riskHigh   = "high"
)

var (
	RiskLow    = RiskLevel{value: riskLow}
	RiskMedium = RiskLevel{value: riskMedium}
	RiskHigh   = RiskLevel{value: riskHigh}
)

var validRiskLevels = map[string]RiskLevel{
	riskLow:    RiskLow,
	riskMedium: RiskMedium,
	riskHigh:   RiskHigh,
}

// NewRiskLevel creates a RiskLevel from a raw string.
func NewRiskLevel(s string) (RiskLevel, error) {
	v, ok := validRiskLevels[s]
	if !ok {
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
	return v, nil
}

// RiskLevelForScore buckets a 0-100 score into a risk tier.
// Thresholds are inclusive at the lower bound: >=70 low, >=50 medium, else high.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLow
	case score >= 50:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true if the risk level has not been initialised.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal returns true when both levels carry the same value.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }

// ---------------------------------------------------------------------------
// Recommendation – immutable value object
// ---------------------------------------------------------------------------

// Recommendation is the suggested next action for a human reviewer.
type Recommendation struct {
	value string
}

const (
	recommendApprove = "approve"
	recommendReview  = "review"
	recommendReject  = "reject"
)

var (
	RecommendApprove = Recommendation{value: recommendApprove}
	RecommendReview  = Recommendation{value: recommendReview}
	RecommendReject  = Recommendation{value: recommendReject}
)

var validRecommendations = map[string]Recommendation{
	recommendApprove: RecommendApprove,
	recommendReview:  RecommendReview,
	recommendReject:  RecommendReject,
}

// recommendationByRisk keeps the reviewer action aligned with the risk tier
// through a single mapping instead of a second threshold chain.
var recommendationByRisk = map[RiskLevel]Recommendation{
	RiskLow:    RecommendApprove,
	RiskMedium: RecommendReview,
	RiskHigh:   RecommendReject,
}

// NewRecommendation creates a Recommendation from a raw string.
func NewRecommendation(s string) (Recommendation, error) {
	v, ok := validRecommendations[s]
	if !ok {
		return Recommendation{}, fmt.Errorf("invalid recommendation: %q", s)
	}
	return v, nil
}

// RecommendationForRisk maps a risk tier to the reviewer action.
func RecommendationForRisk(r RiskLevel) Recommendation {
	return recommendationByRisk[r]
}

// String returns the string representation of the recommendation.
func (r Recommendation) String() string { return r.value }

// IsZero returns true if the recommendation has not been initialised.
func (r Recommendation) IsZero() bool { return r.value == "" }

// Equal returns true when both recommendations carry the same value.
func (r Recommendation) Equal(other Recommendation) bool { return r.value == other.value }
