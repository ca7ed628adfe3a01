package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/moroapp/moro/internal/domain/port"
)

// Compile-time interface check.
var _ port.PaymentGateway = (*MobileMoneyClient)(nil)

// MobileMoneyClient implements port.PaymentGateway against a CinetPay-style
// mobile-money aggregator API.
type MobileMoneyClient struct {
	apiKey    string
	siteID    string
	baseURL   string
	notifyURL string
	client    *http.Client
}

// NewMobileMoneyClient creates a new mobile-money aggregator client.
func NewMobileMoneyClient(apiKey, siteID, baseURL, notifyURL string) *MobileMoneyClient {
	return &MobileMoneyClient{
		apiKey:    apiKey,
		siteID:    siteID,
		baseURL:   strings.TrimRight(baseURL, "/"),
		notifyURL: notifyURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transferRequestPayload struct {
	APIKey        string `json:"apikey"`
	SiteID        string `json:"site_id"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	PhoneNumber   string `json:"phone_number"`
	Description   string `json:"description"`
	NotifyURL     string `json:"notify_url"`
}

type transferResponsePayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		OperatorTransactionID string `json:"operator_transaction_id"`
		Status                string `json:"status"`
	} `json:"data"`
}

// CreateTransfer initiates a mobile-money payout to the applicant's wallet.
func (c *MobileMoneyClient) CreateTransfer(ctx context.Context, transfer port.TransferRequest) (port.TransferReceipt, error) {
	payload, err := json.Marshal(transferRequestPayload{
		APIKey:        c.apiKey,
		SiteID:        c.siteID,
		TransactionID: transfer.Reference,
		Amount:        transfer.Amount.String(),
		Currency:      transfer.Currency,
		PhoneNumber:   transfer.PhoneNumber,
		Description:   transfer.Description,
		NotifyURL:     c.notifyURL,
	})
	if err != nil {
		return port.TransferReceipt{}, fmt.Errorf("marshal transfer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transfer/money/send/contact", strings.NewReader(string(payload)))
	if err != nil {
		return port.TransferReceipt{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return port.TransferReceipt{}, fmt.Errorf("aggregator API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return port.TransferReceipt{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return port.TransferReceipt{}, fmt.Errorf("aggregator API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result transferResponsePayload
	if err := json.Unmarshal(body, &result); err != nil {
		return port.TransferReceipt{}, fmt.Errorf("parse response: %w", err)
	}

	return port.TransferReceipt{
		ProviderReference: result.Data.OperatorTransactionID,
		Status:            mapTransferStatus(result.Data.Status),
	}, nil
}

// GetTransferStatus queries the aggregator for the current state of a transfer.
func (c *MobileMoneyClient) GetTransferStatus(ctx context.Context, reference string) (port.TransferStatus, error) {
	url := fmt.Sprintf("%s/transfer/check/money?apikey=%s&site_id=%s&transaction_id=%s", c.baseURL, c.apiKey, c.siteID, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("aggregator API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("aggregator API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result transferResponsePayload
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	return mapTransferStatus(result.Data.Status), nil
}

// mapTransferStatus maps aggregator statuses to domain TransferStatus values.
func mapTransferStatus(providerStatus string) port.TransferStatus {
	switch strings.ToUpper(providerStatus) {
	case "ACCEPTED", "SUCCESS", "VAL":
		return port.TransferAccepted
	case "REFUSED", "FAILED", "REJ":
		return port.TransferRefused
	default:
		return port.TransferPending
	}
}
