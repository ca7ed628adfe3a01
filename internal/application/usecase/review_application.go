package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/model"
	"github.com/moroapp/moro/internal/domain/port"
)

// ReviewApplicationUseCase applies a human reviewer's decision to a scored
// application and notifies the applicant by email.
type ReviewApplicationUseCase struct {
	appRepo   port.FinancingApplicationRepository
	accounts  port.AccountStore
	publisher port.EventPublisher
	mailer    port.Mailer
	logger    *slog.Logger
}

// NewReviewApplicationUseCase wires dependencies.
func NewReviewApplicationUseCase(
	appRepo port.FinancingApplicationRepository,
	accounts port.AccountStore,
	publisher port.EventPublisher,
	mailer port.Mailer,
	logger *slog.Logger,
) *ReviewApplicationUseCase {
	return &ReviewApplicationUseCase{
		appRepo:   appRepo,
		accounts:  accounts,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

// Execute approves or rejects an application under review.
func (uc *ReviewApplicationUseCase) Execute(
	ctx context.Context,
	req dto.ReviewApplicationRequest,
) (dto.FinancingApplicationResponse, error) {
	if req.ReviewerID == "" {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("reviewer ID is required")
	}
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	if req.Approve {
		app, err = app.Approve(req.ReviewerID, req.Note, now)
	} else {
		app, err = app.Reject(req.ReviewerID, req.Note, now)
	}
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}

	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// Notify the applicant. Delivery problems are logged, never surfaced:
	// the decision stands whether or not the email goes out.
	uc.notifyApplicant(ctx, app)

	return toApplicationResponse(app), nil
}

func (uc *ReviewApplicationUseCase) notifyApplicant(ctx context.Context, app model.FinancingApplication) {
	account, err := uc.accounts.FindByApplicantID(ctx, app.ApplicantID())
	if err != nil || account.Email == "" {
		uc.logger.Warn("skipping decision email, no reachable address",
			"application_id", app.ID(),
			"applicant_id", app.ApplicantID(),
			"error", err,
		)
		return
	}

	subject := "Your financing application has been reviewed"
	body := fmt.Sprintf(
		"Your financing application %s is now %s.\nReviewer note: %s\n",
		app.ID(), app.Status().String(), app.ReviewNote(),
	)
	if err := uc.mailer.Send(ctx, port.Email{To: account.Email, Subject: subject, Body: body}); err != nil {
		uc.logger.Warn("decision email failed",
			"application_id", app.ID(),
			"error", err,
		)
	}
}
