package grpc

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/application/usecase"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/valueobject"
)

// FinancingHandler implements FinancingServiceServer on top of the
// application use cases.
type FinancingHandler struct {
	UnimplementedFinancingServiceServer

	submitUC *usecase.SubmitFinancingApplicationUseCase
	getUC    *usecase.GetApplicationUseCase
	scoreUC  *usecase.ScoreApplicantUseCase
	reviewUC *usecase.ReviewApplicationUseCase
}

// NewFinancingHandler creates a new handler with all use-case dependencies.
func NewFinancingHandler(
	submitUC *usecase.SubmitFinancingApplicationUseCase,
	getUC *usecase.GetApplicationUseCase,
	scoreUC *usecase.ScoreApplicantUseCase,
	reviewUC *usecase.ReviewApplicationUseCase,
) *FinancingHandler {
	return &FinancingHandler{
		submitUC: submitUC,
		getUC:    getUC,
		scoreUC:  scoreUC,
		reviewUC: reviewUC,
	}
}

// SubmitApplication handles a new financing application submission.
func (h *FinancingHandler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	amount, err := decimal.NewFromString(req.RequestedAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.submitUC.Execute(ctx, dto.SubmitApplicationRequest{
		TenantID:        req.TenantID,
		ApplicantID:     req.ApplicantID,
		RequestedAmount: amount,
		Currency:        req.Currency,
		Purpose:         req.Purpose,
		PhoneNumber:     req.PhoneNumber,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &SubmitApplicationResponse{Application: toApplication(resp)}, nil
}

// GetApplication retrieves a financing application by ID.
func (h *FinancingHandler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	resp, err := h.getUC.Execute(ctx, dto.GetApplicationRequest{
		TenantID:      req.TenantID,
		ApplicationID: req.ApplicationID,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &GetApplicationResponse{Application: toApplication(resp)}, nil
}

// ScoreApplicant computes an ad-hoc eligibility score.
func (h *FinancingHandler) ScoreApplicant(ctx context.Context, req *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	amount, err := decimal.NewFromString(req.RequestedAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid amount: %v", err)
	}

	resp, err := h.scoreUC.Execute(ctx, dto.ScoreRequest{
		ApplicantID:     req.ApplicantID,
		RequestedAmount: amount,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ScoreApplicantResponse{
		ApplicantID: resp.ApplicantID,
		TotalScore:  resp.TotalScore,
		Factors: &ScoringFactors{
			FinancialStability: resp.Factors.FinancialStability,
			BusinessActivity:   resp.Factors.BusinessActivity,
			SavingsBehavior:    resp.Factors.SavingsBehavior,
			ProjectSuccessRate: resp.Factors.ProjectSuccessRate,
			AccountMaturity:    resp.Factors.AccountMaturity,
		},
		RiskLevel:      resp.RiskLevel,
		Recommendation: resp.Recommendation,
		Reasoning:      resp.Reasoning,
	}, nil
}

// ReviewApplication records a reviewer's decision.
func (h *FinancingHandler) ReviewApplication(ctx context.Context, req *ReviewApplicationRequest) (*ReviewApplicationResponse, error) {
	resp, err := h.reviewUC.Execute(ctx, dto.ReviewApplicationRequest{
		TenantID:      req.TenantID,
		ApplicationID: req.ApplicationID,
		ReviewerID:    req.ReviewerID,
		Approve:       req.Approve,
		Note:          req.Note,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return &ReviewApplicationResponse{Application: toApplication(resp)}, nil
}

func toApplication(resp dto.FinancingApplicationResponse) *Application {
	return &Application{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		ApplicantID:     resp.ApplicantID,
		RequestedAmount: resp.RequestedAmount.String(),
		Currency:        resp.Currency,
		Purpose:         resp.Purpose,
		Status:          resp.Status,
		TotalScore:      resp.TotalScore,
		RiskLevel:       resp.RiskLevel,
		Recommendation:  resp.Recommendation,
		Reasoning:       resp.Reasoning,
		ReviewerID:      resp.ReviewerID,
		ReviewNote:      resp.ReviewNote,
	}
}

// toStatusError maps domain errors to gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, port.ErrApplicationNotFound), errors.Is(err, port.ErrApplicantNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case port.IsDataAccess(err):
		return status.Error(codes.Unavailable, "temporarily unavailable")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
