package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// ScoringEngine – domain service for financing eligibility scoring
// ---------------------------------------------------------------------------

// Normalization constants for the sub-factor formulas, in XOF. A balance of
// balanceFullScale saturates the balance component, a savings total of
// savingsFullScale saturates the savings component, and so on.
const (
	balanceFullScale    = 100_000.0 // balance at which the balance component maxes out
	avgAmountFullScale  = 50_000.0  // average operation amount at full score
	savingsFullScale    = 500_000.0 // savings total at full score
	frequencyFullScale  = 50.0      // operations at full frequency score
	operationsFullScale = 100.0     // operations at full volume score
	maturityFullDays    = 365.0     // account age at full maturity score
)

// Component caps and multipliers inside the sub-factors.
const (
	balanceScoreCap      = 50.0
	ratioScoreCap        = 50.0
	ratioMultiplier      = 25.0
	frequencyScoreCap    = 40.0
	avgAmountScoreCap    = 30.0
	operationsScoreCap   = 30.0
	savingsAmountCap     = 60.0
	savingsPresenceBonus = 40.0
	neutralProjectScore  = 50.0
)

// Sub-factor weights. They sum to 1.0.
const (
	weightFinancialStability = 0.30
	weightBusinessActivity   = 0.25
	weightSavingsBehavior    = 0.20
	weightProjectSuccess     = 0.15
	weightAccountMaturity    = 0.10
)

// Requested-amount adjustment bands, keyed on requestedAmount/totalIncome.
// Evaluated in order, first match wins.
const (
	amountRatioSevere      = 3.0
	amountRatioElevated    = 2.0
	amountRatioComfortable = 0.5

	amountPenaltySevere    = 0.70
	amountPenaltyElevated  = 0.85
	amountBonusComfortable = 1.10
)

// ScoringFactors holds the five sub-scores, each clamped to [0, 100].
type ScoringFactors struct {
	FinancialStability float64 `json:"financial_stability"`
	BusinessActivity   float64 `json:"business_activity"`
	SavingsBehavior    float64 `json:"savings_behavior"`
	ProjectSuccessRate float64 `json:"project_success_rate"`
	AccountMaturity    float64 `json:"account_maturity"`
}

// ScoringResult is the outcome of a financing eligibility evaluation.
type ScoringResult struct {
	TotalScore     int                        `json:"total_score"`
	Factors        ScoringFactors             `json:"factors"`
	RiskLevel      valueobject.RiskLevel      `json:"-"`
	Recommendation valueobject.Recommendation `json:"-"`
	Reasoning      []string                   `json:"reasoning"`
}

// ScoringEngine computes a 0-100 creditworthiness score from an applicant's
// activity profile. It performs no I/O and holds no state: identical inputs
// always produce identical outputs, which keeps credit decisions auditable.
type ScoringEngine struct{}

// NewScoringEngine returns a new engine instance.
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// Score evaluates the profile against the requested financing amount.
//
// The five sub-factors are combined with weights 0.30 / 0.25 / 0.20 / 0.15 /
// 0.10, the subtotal is scaled by the requested-amount band (skipped entirely
// when the applicant has no recorded income), and the result is clamped to
// [0, 100] and rounded to an integer.
func (e *ScoringEngine) Score(profile valueobject.ApplicantProfile, requestedAmount decimal.Decimal) ScoringResult {
	factors := ScoringFactors{
		FinancialStability: e.financialStability(profile),
		BusinessActivity:   e.businessActivity(profile),
		SavingsBehavior:    e.savingsBehavior(profile),
		ProjectSuccessRate: e.projectSuccessRate(profile),
		AccountMaturity:    e.accountMaturity(profile),
	}

	base := factors.FinancialStability*weightFinancialStability +
		factors.BusinessActivity*weightBusinessActivity +
		factors.SavingsBehavior*weightSavingsBehavior +
		factors.ProjectSuccessRate*weightProjectSuccess +
		factors.AccountMaturity*weightAccountMaturity

	adjusted := adjustForRequestedAmount(base, requestedAmount.InexactFloat64(), profile.TotalIncome.InexactFloat64())

	totalScore := int(math.Round(clamp(adjusted, 0, 100)))

	risk := valueobject.RiskLevelForScore(totalScore)
	return ScoringResult{
		TotalScore:     totalScore,
		Factors:        factors,
		RiskLevel:      risk,
		Recommendation: valueobject.RecommendationForRisk(risk),
		Reasoning:      buildReasoning(factors, totalScore),
	}
}

// financialStability scores the income/expense balance and ratio.
// A negative balance contributes negatively before the final clamp.
func (e *ScoringEngine) financialStability(p valueobject.ApplicantProfile) float64 {
	income := p.TotalIncome.InexactFloat64()
	expenses := p.TotalExpenses.InexactFloat64()

	balanceScore := math.Min(balanceScoreCap, (income-expenses)/balanceFullScale*balanceScoreCap)

	// With no expenses on file the ratio component saturates.
	ratio := 2.0
	if expenses > 0 {
		ratio = income / expenses
	}
	ratioScore := math.Min(ratioScoreCap, ratio*ratioMultiplier)

	return clamp(balanceScore+ratioScore, 0, 100)
}

// businessActivity scores operation frequency, typical amount, and volume.
func (e *ScoringEngine) businessActivity(p valueobject.ApplicantProfile) float64 {
	frequencyScore := math.Min(frequencyScoreCap,
		float64(p.TransactionFrequency)/frequencyFullScale*frequencyScoreCap)
	amountScore := math.Min(avgAmountScoreCap,
		p.AverageTransactionAmount.InexactFloat64()/avgAmountFullScale*avgAmountScoreCap)
	operationsScore := math.Min(operationsScoreCap,
		float64(p.OperationsCount)/operationsFullScale*operationsScoreCap)

	return clamp(frequencyScore+amountScore+operationsScore, 0, 100)
}

// savingsBehavior scores the accumulated savings plus a flat bonus for
// having any savings at all.
func (e *ScoringEngine) savingsBehavior(p valueobject.ApplicantProfile) float64 {
	savings := p.SavingsAmount.InexactFloat64()

	score := math.Min(savingsAmountCap, savings/savingsFullScale*savingsAmountCap)
	if savings > 0 {
		score += savingsPresenceBonus
	}
	return clamp(score, 0, 100)
}

// projectSuccessRate scores the share of completed projects. An applicant
// with no project history is neutral, neither penalized nor rewarded.
func (e *ScoringEngine) projectSuccessRate(p valueobject.ApplicantProfile) float64 {
	if p.ProjectsCount == 0 {
		return neutralProjectScore
	}
	return clamp(float64(p.CompletedProjectsCount)/float64(p.ProjectsCount)*100, 0, 100)
}

// accountMaturity scores account age; a one-year-old account maxes out.
func (e *ScoringEngine) accountMaturity(p valueobject.ApplicantProfile) float64 {
	return clamp(float64(p.AccountAgeDays)/maturityFullDays*100, 0, 100)
}

// adjustForRequestedAmount scales the base score by how large the requested
// amount is relative to the applicant's recorded income. Applicants with no
// recorded income are not adjusted at all.
func adjustForRequestedAmount(base, requested, totalIncome float64) float64 {
	if totalIncome <= 0 {
		return base
	}
	ratio := requested / totalIncome
	switch {
	case ratio > amountRatioSevere:
		return base * amountPenaltySevere
	case ratio > amountRatioElevated:
		return base * amountPenaltyElevated
	case ratio < amountRatioComfortable:
		return base * amountBonusComfortable
	default:
		return base
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
