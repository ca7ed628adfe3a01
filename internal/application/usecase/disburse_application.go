package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/port"
)

// DisburseApplicationUseCase pays out an approved application through the
// mobile-money gateway.
type DisburseApplicationUseCase struct {
	appRepo   port.FinancingApplicationRepository
	gateway   port.PaymentGateway
	publisher port.EventPublisher
}

// NewDisburseApplicationUseCase wires dependencies.
func NewDisburseApplicationUseCase(
	appRepo port.FinancingApplicationRepository,
	gateway port.PaymentGateway,
	publisher port.EventPublisher,
) *DisburseApplicationUseCase {
	return &DisburseApplicationUseCase{
		appRepo:   appRepo,
		gateway:   gateway,
		publisher: publisher,
	}
}

// Execute initiates the transfer. When the gateway accepts synchronously the
// application is marked DISBURSED right away; a PENDING transfer is settled
// later by the webhook callback.
func (uc *DisburseApplicationUseCase) Execute(
	ctx context.Context,
	req dto.DisburseApplicationRequest,
) (dto.FinancingApplicationResponse, error) {
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, req.TenantID, req.ApplicationID)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	receipt, err := uc.gateway.CreateTransfer(ctx, port.TransferRequest{
		Reference:   app.ID(),
		PhoneNumber: app.PhoneNumber(),
		Amount:      app.RequestedAmount(),
		Currency:    app.Currency(),
		Description: fmt.Sprintf("financing payout %s", app.ID()),
	})
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("create transfer: %w", err)
	}

	switch receipt.Status {
	case port.TransferRefused:
		return dto.FinancingApplicationResponse{}, fmt.Errorf("transfer refused by gateway")
	case port.TransferPending:
		// Settlement arrives via webhook; nothing to record yet.
		return toApplicationResponse(app), nil
	}

	app, err = app.MarkDisbursed(receipt.ProviderReference, now)
	if err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("mark disbursed: %w", err)
	}

	if err := uc.appRepo.Save(ctx, app); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return dto.FinancingApplicationResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toApplicationResponse(app), nil
}
