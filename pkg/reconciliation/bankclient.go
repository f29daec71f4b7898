package reconciliation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPBankClient implements BankClient against the banking collaborator's
// REST surface.
type HTTPBankClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPBankClient creates a client for the banking collaborator.
func NewHTTPBankClient(baseURL string) *HTTPBankClient {
	return &HTTPBankClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Make sure we conform to the interface
var _ BankClient = (*HTTPBankClient)(nil)

// GetTrustAccountBalance fetches the trust-account balance for a date.
func (c *HTTPBankClient) GetTrustAccountBalance(ctx context.Context, date string) (int64, error) {
	url := fmt.Sprintf("%s/trust-account/balance?date=%s", c.BaseURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build balance request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("balance fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("balance fetch returned status %d", resp.StatusCode)
	}

	var payload struct {
		Balance int64 `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode balance response: %w", err)
	}

	return payload.Balance, nil
}
