package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultWeb3FormsEndpoint is the public submit endpoint
const DefaultWeb3FormsEndpoint = "https://api.web3forms.com/submit"

// maxResponseBytes caps how much of the provider response is read
const maxResponseBytes = 1 << 20

// Web3FormsClient posts contact payloads to the Web3Forms API
type Web3FormsClient struct {
	endpoint string
	client   *http.Client
}

type web3FormsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewWeb3FormsClient creates a client with an explicit per-request timeout
func NewWeb3FormsClient(endpoint string, timeout time.Duration) *Web3FormsClient {
	return NewWeb3FormsClientWithHTTP(endpoint, &http.Client{Timeout: timeout})
}

// NewWeb3FormsClientWithHTTP allows a custom HTTP client (proxies, tests)
func NewWeb3FormsClientWithHTTP(endpoint string, client *http.Client) *Web3FormsClient {
	if endpoint == "" {
		endpoint = DefaultWeb3FormsEndpoint
	}
	return &Web3FormsClient{endpoint: endpoint, client: client}
}

func (c *Web3FormsClient) Name() string {
	return "web3forms"
}

// Send issues a single JSON POST and interprets the success flag of the response
func (c *Web3FormsClient) Send(ctx context.Context, payload Payload) Outcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return transportError(fmt.Errorf("failed to encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return transportError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return transportError(fmt.Errorf("web3forms request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(fmt.Errorf("failed to read web3forms response: %w", err))
	}

	var data web3FormsResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return transportError(fmt.Errorf("unparsable web3forms response (status %d): %w", resp.StatusCode, err))
	}

	if data.Success {
		return delivered()
	}
	return rejected(data.Message, errors.New("web3forms rejected submission: status "+resp.Status))
}
