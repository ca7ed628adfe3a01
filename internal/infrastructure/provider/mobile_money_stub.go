package provider

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moroapp/moro/internal/domain/port"
)

// Compile-time interface check
var _ port.PaymentGateway = (*MobileMoneyStub)(nil)

// MobileMoneyStub is a stub payment gateway for development and test
// environments. Every transfer is accepted immediately.
type MobileMoneyStub struct{}

func NewMobileMoneyStub() *MobileMoneyStub {
	return &MobileMoneyStub{}
}

// CreateTransfer acknowledges the transfer with a synthetic provider reference.
func (s *MobileMoneyStub) CreateTransfer(_ context.Context, transfer port.TransferRequest) (port.TransferReceipt, error) {
	if transfer.PhoneNumber == "" {
		return port.TransferReceipt{}, fmt.Errorf("phone number is required")
	}
	return port.TransferReceipt{
		ProviderReference: "momo-" + uuid.New().String()[:8],
		Status:            port.TransferAccepted,
	}, nil
}

// GetTransferStatus always reports success for stub transfers.
func (s *MobileMoneyStub) GetTransferStatus(_ context.Context, reference string) (port.TransferStatus, error) {
	if reference == "" {
		return "", fmt.Errorf("transfer reference is required")
	}
	return port.TransferAccepted, nil
}
