package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/model"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/service"
	"github.com/moroapp/moro/pkg/observability"
)

// SubmitFinancingApplicationUseCase orchestrates new application submission:
// profile aggregation, eligibility scoring, persistence, and event
// publication. The application lands in UNDER_REVIEW carrying its score; the
// approve/reject decision belongs to a human reviewer.
type SubmitFinancingApplicationUseCase struct {
	appRepo    port.FinancingApplicationRepository
	aggregator *service.ProfileAggregator
	engine     *service.ScoringEngine
	publisher  port.EventPublisher
}

// NewSubmitFinancingApplicationUseCase wires dependencies.
func NewSubmitFinancingApplicationUseCase(
	appRepo port.FinancingApplicationRepository,
	aggregator *service.ProfileAggregator,
	engine *service.ScoringEngine,
	publisher port.EventPublisher,
) *SubmitFinancingApplicationUseCase {
	return &SubmitFinancingApplicationUseCase{
		appRepo:    appRepo,
		aggregator: aggregator,
		engine:     engine,
		publisher:  publisher,
	}
}

// Execute creates, scores, and persists a financing application.
func (uc *SubmitFinancingApplicationUseCase) Execute(
	ctx context.Context,
	req dto.SubmitApplicationRequest,
) (dto.FinancingApplicationResponse, error) {
	now := time.Now().UTC()

	// 1. Create the application aggregate.
	app, err := model.NewFinancingApplication(
		req.TenantID, req.ApplicantID, req.RequestedAmount,
		req.Currency, req.Purpose, req.PhoneNumber, now,
	)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 2. Aggregate the applicant's activity profile. Aggregator failures
	// (applicant not found, data access) propagate unchanged.
	profile, err := uc.aggregator.BuildProfile(ctx, req.ApplicantID, now)
	if err != nil {
		return dto.FinancingApplicationResponse{}, err
	}

	// 3. Run the scoring engine and snapshot the result on the aggregate.
	result := uc.engine.Score(profile, req.RequestedAmount)
	app, err = app.AttachScore(result.TotalScore, result.RiskLevel, result.Recommendation, result.Reasoning, now)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("attach score: %w", err)
	}

	// 4. Persist.
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	observability.ApplicationsScored.WithLabelValues(result.Recommendation.String()).Inc()

	return toApplicationResponse(app), nil
}

func toApplicationResponse(app model.FinancingApplication) dto.FinancingApplicationResponse {
	return dto.FinancingApplicationResponse{
		ID:              app.ID(),
		TenantID:        app.TenantID(),
		ApplicantID:     app.ApplicantID(),
		RequestedAmount: app.RequestedAmount(),
		Currency:        app.Currency(),
		Purpose:         app.Purpose(),
		Status:          app.Status().String(),
		TotalScore:      app.TotalScore(),
		RiskLevel:       app.RiskLevel().String(),
		Recommendation:  app.Recommendation().String(),
		Reasoning:       app.Reasoning(),
		ReviewerID:      app.ReviewerID(),
		ReviewNote:      app.ReviewNote(),
		CreatedAt:       app.CreatedAt(),
		UpdatedAt:       app.UpdatedAt(),
	}
}
