// Package emailapi sends receipts through an external transactional-email
// HTTP API. The client makes exactly one attempt per receipt behind a
// circuit breaker; a failed send is reported to the caller and not retried.
package emailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/KilapathiMohanaRao/ReactProjectCart/internal/sender"
	"github.com/KilapathiMohanaRao/ReactProjectCart/pkg/httpclient"
)

// Sender posts receipts to the email API's send endpoint.
type Sender struct {
	client *httpclient.CircuitBreakerClient
	url    string
	apiKey string
	logger *slog.Logger
}

// New creates the email-API sender. url is the full send-endpoint URL.
func New(client *httpclient.CircuitBreakerClient, url, apiKey string, logger *slog.Logger) *Sender {
	return &Sender{client: client, url: url, apiKey: apiKey, logger: logger}
}

// Name returns the name of this sender.
func (s *Sender) Name() string {
	return "emailapi"
}

// Send posts the receipt. Any non-2xx response is a failure.
func (s *Sender) Send(ctx context.Context, receipt sender.Receipt) error {
	body, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build receipt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email api status %d: %s", resp.StatusCode, string(snippet))
	}

	s.logger.DebugContext(ctx, "receipt accepted by email api",
		slog.String("order_id", receipt.OrderID),
	)
	return nil
}
