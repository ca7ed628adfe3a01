package service

// Reasoning thresholds shared by every factor and the overall remark.
const (
	reasoningStrongThreshold = 70.0
	reasoningWeakThreshold   = 50.0
)

// reasoningRule ties one scoring factor to its pair of reviewer-facing
// remarks. A factor at or above the strong threshold yields the positive
// remark, below the weak threshold the negative one, and nothing in between.
type reasoningRule struct {
	factor   func(ScoringFactors) float64
	positive string
	negative string
}

// factorReasoningRules is evaluated in fixed order. Account maturity carries
// weight in the score but produces no remark of its own.
var factorReasoningRules = []reasoningRule{
	{
		factor:   func(f ScoringFactors) float64 { return f.FinancialStability },
		positive: "Solid financial stability: income comfortably covers expenses",
		negative: "Fragile finances: expenses weigh heavily against recorded income",
	},
	{
		factor:   func(f ScoringFactors) float64 { return f.BusinessActivity },
		positive: "Sustained business activity with regular operations",
		negative: "Sparse business activity: few operations on record",
	},
	{
		factor:   func(f ScoringFactors) float64 { return f.SavingsBehavior },
		positive: "Healthy savings discipline across savings goals",
		negative: "Little or no savings set aside",
	},
	{
		factor:   func(f ScoringFactors) float64 { return f.ProjectSuccessRate },
		positive: "Strong track record of completed projects",
		negative: "Weak project completion record",
	},
}

const (
	overallPositiveRemark = "Overall profile indicates a creditworthy applicant"
	overallNegativeRemark = "Overall profile indicates elevated credit risk"
)

// buildReasoning produces the ordered reviewer-facing remarks for a scoring
// outcome: at most one remark per input factor followed by at most one
// overall remark keyed on the total score. Remarks are not deduplicated.
func buildReasoning(factors ScoringFactors, totalScore int) []string {
	var remarks []string
	for _, rule := range factorReasoningRules {
		switch v := rule.factor(factors); {
		case v >= reasoningStrongThreshold:
			remarks = append(remarks, rule.positive)
		case v < reasoningWeakThreshold:
			remarks = append(remarks, rule.negative)
		}
	}

	switch {
	case float64(totalScore) >= reasoningStrongThreshold:
		remarks = append(remarks, overallPositiveRemark)
	case float64(totalScore) < reasoningWeakThreshold:
		remarks = append(remarks, overallNegativeRemark)
	}
	return remarks
}
