package switchadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// WireRequest is the outbound settlement message sent to the switch.
type WireRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	DebtorId       string `json:"debtor_participant"`
	CreditorId     string `json:"creditor_participant"`
	Amount         int64  `json:"amount"`
}

// WireResponse is the switch's reply to a settlement or health request.
type WireResponse struct {
	Accepted   bool   `json:"accepted"`
	ReasonCode string `json:"reason_code,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// SwitchClient abstracts the instant-payment switch's wire protocol.
type SwitchClient interface {
	// Settle submits one settlement request and returns the switch's verdict.
	// The context carries the hard deadline; implementations must not retry.
	Settle(ctx context.Context, req WireRequest) (*WireResponse, error)

	// Ping probes the switch and returns nil when it is reachable.
	Ping(ctx context.Context) error
}

// HTTPSwitchClient implements SwitchClient over HTTP JSON.
type HTTPSwitchClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSwitchClient creates a client for the switch at baseURL.
func NewHTTPSwitchClient(baseURL string) *HTTPSwitchClient {
	return &HTTPSwitchClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Make sure we conform to the interface
var _ SwitchClient = (*HTTPSwitchClient)(nil)

// Settle posts the settlement request to the switch.
func (c *HTTPSwitchClient) Settle(ctx context.Context, req WireRequest) (*WireResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wire request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/settlements", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build switch request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("switch call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("switch returned status %d", resp.StatusCode)
	}

	var wire WireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode switch response: %w", err)
	}

	return &wire, nil
}

// Ping issues a GET against the switch health endpoint.
func (c *HTTPSwitchClient) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("switch health call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("switch health returned status %d", resp.StatusCode)
	}

	return nil
}
