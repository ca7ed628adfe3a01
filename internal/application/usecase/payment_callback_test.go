package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moroapp/moro/internal/application/dto"
	"github.com/moroapp/moro/internal/application/usecase"
	"github.com/moroapp/moro/internal/domain/model"
	"github.com/moroapp/moro/internal/domain/port"
)

func callbackRequest(reference string) dto.PaymentCallbackRequest {
	return dto.PaymentCallbackRequest{
		CallbackID: "cb-1",
		TenantID:   "tenant-1",
		Reference:  reference,
		Status:     "ACCEPTED",
	}
}

func TestPaymentCallback_SettlesApplication(t *testing.T) {
	app := approvedApplication(t)
	repo := &mockApplicationRepo{
		findByIDFunc: func(_ context.Context, tenantID, id string) (model.FinancingApplication, error) {
			assert.Equal(t, "tenant-1", tenantID)
			assert.Equal(t, app.ID(), id)
			return app, nil
		},
	}
	publisher := &mockEventPublisher{}
	uc := usecase.NewHandlePaymentCallbackUseCase(
		repo, &mockPaymentGateway{}, &mockCallbackRegistry{}, publisher, discardLogger(),
	)

	err := uc.Execute(context.Background(), callbackRequest(app.ID()))
	require.NoError(t, err)

	require.Len(t, repo.savedApps, 1)
	assert.Equal(t, "DISBURSED", repo.savedApps[0].Status().String())
	require.Len(t, publisher.publishedEvents, 1)
	assert.Equal(t, "financing.application.disbursed", publisher.publishedEvents[0].EventType())
}

func TestPaymentCallback_RequiresIdentifiers(t *testing.T) {
	uc := usecase.NewHandlePaymentCallbackUseCase(
		&mockApplicationRepo{}, &mockPaymentGateway{}, &mockCallbackRegistry{}, &mockEventPublisher{}, discardLogger(),
	)

	err := uc.Execute(context.Background(), dto.PaymentCallbackRequest{Reference: "app-1"})
	require.Error(t, err)

	err = uc.Execute(context.Background(), dto.PaymentCallbackRequest{CallbackID: "cb-1"})
	require.Error(t, err)
}

func TestPaymentCallback_DuplicateDeliveryIgnored(t *testing.T) {
	app := approvedApplication(t)
	repo := &mockApplicationRepo{
		findByIDFunc: func(_ context.Context, _, _ string) (model.FinancingApplication, error) {
			return app, nil
		},
	}
	statusCalls := 0
	gateway := &mockPaymentGateway{
		statusFunc: func(_ context.Context, _ string) (port.TransferStatus, error) {
			statusCalls++
			return port.TransferAccepted, nil
		},
	}
	registry := &mockCallbackRegistry{}
	uc := usecase.NewHandlePaymentCallbackUseCase(repo, gateway, registry, &mockEventPublisher{}, discardLogger())

	req := callbackRequest(app.ID())
	require.NoError(t, uc.Execute(context.Background(), req))
	require.NoError(t, uc.Execute(context.Background(), req))

	// The redelivery never reaches the gateway; the application settles once.
	assert.Equal(t, 1, statusCalls)
	assert.Len(t, repo.savedApps, 1)
}

func TestPaymentCallback_StatusVerifiedServerSide(t *testing.T) {
	// The callback body claims ACCEPTED but the gateway says REFUSED. The
	// gateway wins and nothing is persisted.
	app := approvedApplication(t)
	repo := &mockApplicationRepo{
		findByIDFunc: func(_ context.Context, _, _ string) (model.FinancingApplication, error) {
			return app, nil
		},
	}
	gateway := &mockPaymentGateway{
		statusFunc: func(_ context.Context, _ string) (port.TransferStatus, error) {
			return port.TransferRefused, nil
		},
	}
	uc := usecase.NewHandlePaymentCallbackUseCase(repo, gateway, &mockCallbackRegistry{}, &mockEventPublisher{}, discardLogger())

	err := uc.Execute(context.Background(), callbackRequest(app.ID()))
	require.NoError(t, err)
	assert.Empty(t, repo.savedApps)
}

func TestPaymentCallback_PendingStatusIsNoOp(t *testing.T) {
	repo := &mockApplicationRepo{}
	gateway := &mockPaymentGateway{
		statusFunc: func(_ context.Context, _ string) (port.TransferStatus, error) {
			return port.TransferPending, nil
		},
	}
	uc := usecase.NewHandlePaymentCallbackUseCase(repo, gateway, &mockCallbackRegistry{}, &mockEventPublisher{}, discardLogger())

	err := uc.Execute(context.Background(), callbackRequest("app-1"))
	require.NoError(t, err)
	assert.Empty(t, repo.savedApps)
}

func TestPaymentCallback_RedeliveryAfterVerificationFailureSettles(t *testing.T) {
	// A transient gateway failure on the first delivery must not consume the
	// callback id; the aggregator's redelivery has to settle the application.
	app := approvedApplication(t)
	repo := &mockApplicationRepo{
		findByIDFunc: func(_ context.Context, _, _ string) (model.FinancingApplication, error) {
			return app, nil
		},
	}
	statusCalls := 0
	gateway := &mockPaymentGateway{
		statusFunc: func(_ context.Context, _ string) (port.TransferStatus, error) {
			statusCalls++
			if statusCalls == 1 {
				return "", fmt.Errorf("gateway timeout")
			}
			return port.TransferAccepted, nil
		},
	}
	registry := &mockCallbackRegistry{}
	uc := usecase.NewHandlePaymentCallbackUseCase(repo, gateway, registry, &mockEventPublisher{}, discardLogger())

	req := callbackRequest(app.ID())
	err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, []string{"cb-1"}, registry.released)
	assert.Empty(t, repo.savedApps)

	require.NoError(t, uc.Execute(context.Background(), req))
	assert.Equal(t, 2, statusCalls)
	require.Len(t, repo.savedApps, 1)
	assert.Equal(t, "DISBURSED", repo.savedApps[0].Status().String())
}

func TestPaymentCallback_SettleFailureReleasesRegistration(t *testing.T) {
	app := approvedApplication(t)
	findCalls := 0
	repo := &mockApplicationRepo{
		findByIDFunc: func(_ context.Context, _, _ string) (model.FinancingApplication, error) {
			findCalls++
			if findCalls == 1 {
				return model.FinancingApplication{}, port.NewDataAccessError("find application", fmt.Errorf("connection reset"))
			}
			return app, nil
		},
	}
	registry := &mockCallbackRegistry{}
	uc := usecase.NewHandlePaymentCallbackUseCase(repo, &mockPaymentGateway{}, registry, &mockEventPublisher{}, discardLogger())

	req := callbackRequest(app.ID())
	require.Error(t, uc.Execute(context.Background(), req))
	assert.Len(t, registry.released, 1)

	require.NoError(t, uc.Execute(context.Background(), req))
	require.Len(t, repo.savedApps, 1)
}

func TestPaymentCallback_RegistryFailure(t *testing.T) {
	registry := &mockCallbackRegistry{
		markFunc: func(_ context.Context, _ string) (bool, error) {
			return false, fmt.Errorf("redis: connection refused")
		},
	}
	uc := usecase.NewHandlePaymentCallbackUseCase(
		&mockApplicationRepo{}, &mockPaymentGateway{}, registry, &mockEventPublisher{}, discardLogger(),
	)

	err := uc.Execute(context.Background(), callbackRequest("app-1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register callback")
}

func TestPaymentCallback_UnknownReference(t *testing.T) {
	uc := usecase.NewHandlePaymentCallbackUseCase(
		&mockApplicationRepo{}, &mockPaymentGateway{}, &mockCallbackRegistry{}, &mockEventPublisher{}, discardLogger(),
	)

	err := uc.Execute(context.Background(), callbackRequest("missing"))
	require.ErrorIs(t, err, port.ErrApplicationNotFound)
}
