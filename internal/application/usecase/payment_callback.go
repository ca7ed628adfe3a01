package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/pkg/observability"
)

// HandlePaymentCallbackUseCase processes webhook notifications from the
// mobile-money aggregator. The aggregator delivers callbacks at least once,
// so deliveries are deduplicated through the callback registry, and the
// transfer status is always re-checked server-side rather than trusted from
// the callback body.
type HandlePaymentCallbackUseCase struct {
	appRepo   port.FinancingApplicationRepository
	gateway   port.PaymentGateway
	registry  port.CallbackRegistry
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewHandlePaymentCallbackUseCase wires dependencies.
func NewHandlePaymentCallbackUseCase(
	appRepo port.FinancingApplicationRepository,
	gateway port.PaymentGateway,
	registry port.CallbackRegistry,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *HandlePaymentCallbackUseCase {
	return &HandlePaymentCallbackUseCase{
		appRepo:   appRepo,
		gateway:   gateway,
		registry:  registry,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute settles the application referenced by the callback.
func (uc *HandlePaymentCallbackUseCase) Execute(ctx context.Context, req dto.PaymentCallbackRequest) error {
	if req.CallbackID == "" || req.Reference == "" {
		return fmt.Errorf("callback id and reference are required")
	}

	first, err := uc.registry.MarkProcessed(ctx, req.CallbackID)
	if err != nil {
		return fmt.Errorf("register callback: %w", err)
	}
	if !first {
		uc.logger.Debug("duplicate payment callback ignored", "callback_id", req.CallbackID)
		observability.PaymentCallbacks.WithLabelValues("duplicate").Inc()
		return nil
	}

	status, err := uc.gateway.GetTransferStatus(ctx, req.Reference)
	if err != nil {
		// Forget the id so the gateway's redelivery gets another attempt.
		uc.release(ctx, req.CallbackID)
		observability.PaymentCallbacks.WithLabelValues("error").Inc()
		return fmt.Errorf("verify transfer status: %w", err)
	}
	observability.PaymentCallbacks.WithLabelValues("processed").Inc()

	switch status {
	case port.TransferAccepted:
		if err := uc.settle(ctx, req.TenantID, req.Reference); err != nil {
			uc.release(ctx, req.CallbackID)
			return err
		}
		return nil
	case port.TransferRefused:
		uc.logger.Warn("transfer refused, application stays approved",
			"reference", req.Reference,
		)
		return nil
	default:
		uc.logger.Info("transfer still pending", "reference", req.Reference)
		return nil
	}
}

func (uc *HandlePaymentCallbackUseCase) release(ctx context.Context, callbackID string) {
	if err := uc.registry.Release(ctx, callbackID); err != nil {
		uc.logger.Warn("failed to release callback registration",
			"callback_id", callbackID,
			"error", err,
		)
	}
}

func (uc *HandlePaymentCallbackUseCase) settle(ctx context.Context, tenantID, reference string) error {
	now := time.Now().UTC()

	app, err := uc.appRepo.FindByID(ctx, tenantID, reference)
	if err != nil {
		return fmt.Errorf("find application: %w", err)
	}

	app, err = app.MarkDisbursed(reference, now)
	if err != nil {
		return fmt.Errorf("mark disbursed: %w", err)
	}
	if err := uc.appRepo.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if err := uc.publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
