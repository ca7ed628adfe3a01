package usecase

import (
	"context"
	"fmt"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/port"
)

// GetApplicationUseCase retrieves a single financing application.
type GetApplicationUseCase struct {
	appRepo port.FinancingApplicationRepository
}

// NewGetApplicationUseCase wires dependencies.
func NewGetApplicationUseCase(appRepo port.FinancingApplicationRepository) *GetApplicationUseCase {
	return &GetApplicationUseCase{appRepo: appRepo}
}

// Execute fetches the application by id within the tenant.
func (uc *GetApplicationUseCase) Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.FinancingApplicationResponse, error) {
	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}
	return toApplicationResponse(app), nil
}

// ListApplicationsUseCase lists all applications lodged by one applicant.
type ListApplicationsUseCase struct {
	appRepo port.FinancingApplicationRepository
}

// NewListApplicationsUseCase wires dependencies.
func NewListApplicationsUseCase(appRepo port.FinancingApplicationRepository) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{appRepo: appRepo}
}

// Execute lists applications newest first.
func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) ([]dto.FinancingApplicationResponse, error) {
	apps, err := uc.appRepo.FindByApplicantID(ctx, req.TenantID, req.ApplicantID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	out := make([]dto.FinancingApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out, nil
}
