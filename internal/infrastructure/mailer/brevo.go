package mailer

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
var _ port.Mailer = (*BrevoClient)(nil)

// BrevoClient implements port.Mailer using the Brevo transactional email API.
type BrevoClient struct {
	apiKey      string
	baseURL     string
	senderName  string
	senderEmail string
	client      *http.Client
}

// NewBrevoClient creates a new Brevo API client.
func NewBrevoClient(apiKey, baseURL, senderName, senderEmail string) *BrevoClient {
	return &BrevoClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		senderName:  senderName,
		senderEmail: senderEmail,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sendEmailPayload struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	TextContent string `json:"textContent"`
}

// Send delivers a transactional email through the Brevo API.
func (c *BrevoClient) Send(ctx context.Context, msg port.Email) error {
	var payload sendEmailPayload
	payload.Sender.Name = c.senderName
	payload.Sender.Email = c.senderEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: msg.To}}
	payload.Subject = msg.Subject
	payload.TextContent = msg.Body

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mailer API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mailer API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}
