package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/moroapp/moro/internal/domain/event"
	"github.com/moroapp/moro/internal/domain/model"
	"github.com/moroapp/moro/internal/domain/port"
	"github.com/moroapp/moro/internal/domain/service"
)

// --- Mock implementations shared across the use-case tests ---

type mockApplicationRepo struct {
	saveFunc     func(ctx context.Context, app model.FinancingApplication) error
	findByIDFunc func(ctx context.Context, tenantID, id string) (model.FinancingApplication, error)
	listFunc     func(ctx context.Context, tenantID, applicantID string) ([]model.FinancingApplication, error)
	savedApps    []model.FinancingApplication
}

func (m *mockApplicationRepo) Save(ctx context.Context, app model.FinancingApplication) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, app)
	}
	m.savedApps = append(m.savedApps, app)
	return nil
}

func (m *mockApplicationRepo) FindByID(ctx context.Context, tenantID, id string) (model.FinancingApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.FinancingApplication{}, port.ErrApplicationNotFound
}

func (m *mockApplicationRepo) FindByApplicantID(ctx context.Context, tenantID, applicantID string) ([]model.FinancingApplication, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, tenantID, applicantID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockPaymentGateway struct {
	createFunc func(ctx context.Context, req port.TransferRequest) (port.TransferReceipt, error)
	statusFunc func(ctx context.Context, reference string) (port.TransferStatus, error)
	transfers  []port.TransferRequest
}

func (m *mockPaymentGateway) CreateTransfer(ctx context.Context, req port.TransferRequest) (port.TransferReceipt, error) {
	m.transfers = append(m.transfers, req)
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return port.TransferReceipt{ProviderReference: "momo-ref", Status: port.TransferAccepted}, nil
}

func (m *mockPaymentGateway) GetTransferStatus(ctx context.Context, reference string) (port.TransferStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx, reference)
	}
	return port.TransferAccepted, nil
}

type mockCallbackRegistry struct {
	markFunc    func(ctx context.Context, callbackID string) (bool, error)
	releaseFunc func(ctx context.Context, callbackID string) error
	seen        map[string]bool
	released    []string
}

func (m *mockCallbackRegistry) MarkProcessed(ctx context.Context, callbackID string) (bool, error) {
	if m.markFunc != nil {
		return m.markFunc(ctx, callbackID)
	}
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[callbackID] {
		return false, nil
	}
	m.seen[callbackID] = true
	return true, nil
}

func (m *mockCallbackRegistry) Release(ctx context.Context, callbackID string) error {
	m.released = append(m.released, callbackID)
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, callbackID)
	}
	delete(m.seen, callbackID)
	return nil
}

type mockMailer struct {
	sendFunc func(ctx context.Context, msg port.Email) error
	sent     []port.Email
}

func (m *mockMailer) Send(ctx context.Context, msg port.Email) error {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, msg)
	}
	m.sent = append(m.sent, msg)
	return nil
}

type mockAccountStore struct {
	findFunc func(ctx context.Context, applicantID string) (port.Account, error)
}

func (m *mockAccountStore) FindByApplicantID(ctx context.Context, applicantID string) (port.Account, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, applicantID)
	}
	return port.Account{ApplicantID: applicantID, Email: applicantID + "@example.com"}, nil
}

type mockOperationStore struct {
	operations []port.Operation
	err        error
}

func (m *mockOperationStore) ListByApplicant(_ context.Context, _ string) ([]port.Operation, error) {
	return m.operations, m.err
}

type mockProjectStore struct {
	projects []port.Project
}

func (m *mockProjectStore) ListByApplicant(_ context.Context, _ string) ([]port.Project, error) {
	return m.projects, nil
}

type mockSavingsStore struct {
	goals []port.SavingsGoal
}

func (m *mockSavingsStore) ListByApplicant(_ context.Context, _ string) ([]port.SavingsGoal, error) {
	return m.goals, nil
}

// emptyAggregator builds a ProfileAggregator whose applicant resolves but has
// no recorded activity.
func emptyAggregator() *service.ProfileAggregator {
	return service.NewProfileAggregator(
		&mockAccountStore{},
		&mockOperationStore{},
		&mockProjectStore{},
		&mockSavingsStore{},
	)
}

// missingAggregator builds a ProfileAggregator whose applicant cannot be
// resolved at all.
func missingAggregator() *service.ProfileAggregator {
	return service.NewProfileAggregator(
		&mockAccountStore{findFunc: func(_ context.Context, _ string) (port.Account, error) {
			return port.Account{}, port.ErrApplicantNotFound
		}},
		&mockOperationStore{},
		&mockProjectStore{},
		&mockSavingsStore{},
	)
}

// failingAggregator builds a ProfileAggregator whose operation store fails.
func failingAggregator() *service.ProfileAggregator {
	return service.NewProfileAggregator(
		&mockAccountStore{},
		&mockOperationStore{err: fmt.Errorf("connection refused")},
		&mockProjectStore{},
		&mockSavingsStore{},
	)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
