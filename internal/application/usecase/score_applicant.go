package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/service"
)

// ErrInvalidAmount is returned when the requested amount is zero or negative.
// It is rejected before any store read happens.
var ErrInvalidAmount = errors.New("requested amount must be positive")

// ScoreApplicantUseCase computes an eligibility score on demand without
// creating an application. Nothing is persisted or cached; every call
// aggregates a fresh profile.
type ScoreApplicantUseCase struct {
	aggregator *service.ProfileAggregator
	engine     *service.ScoringEngine
}

// NewScoreApplicantUseCase wires dependencies.
func NewScoreApplicantUseCase(aggregator *service.ProfileAggregator, engine *service.ScoringEngine) *ScoreApplicantUseCase {
	return &ScoreApplicantUseCase{aggregator: aggregator, engine: engine}
}

// Execute aggregates the applicant's history and scores it against the
// requested amount. Aggregator failures are surfaced unchanged.
func (uc *ScoreApplicantUseCase) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	if req.ApplicantID == "" {
		return dto.ScoreResponse{}, errors.New("applicant ID is required")
	}
	if req.RequestedAmount.LessThanOrEqual(decimal.Zero) {
		return dto.ScoreResponse{}, ErrInvalidAmount
	}

	profile, err := uc.aggregator.BuildProfile(ctx, req.ApplicantID, time.Now().UTC())
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	result := uc.engine.Score(profile, req.RequestedAmount)
	return toScoreResponse(req.ApplicantID, result), nil
}

func toScoreResponse(applicantID string, result service.ScoringResult) dto.ScoreResponse {
	return dto.ScoreResponse{
		ApplicantID: applicantID,
		TotalScore:  result.TotalScore,
		Factors: dto.ScoringFactorsResponse{
			FinancialStability: result.Factors.FinancialStability,
			BusinessActivity:   result.Factors.BusinessActivity,
			SavingsBehavior:    result.Factors.SavingsBehavior,
			ProjectSuccessRate: result.Factors.ProjectSuccessRate,
			AccountMaturity:    result.Factors.AccountMaturity,
		},
		RiskLevel:      result.RiskLevel.String(),
		Recommendation: result.Recommendation.String(),
		Reasoning:      result.Reasoning,
	}
}
