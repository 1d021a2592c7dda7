package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// GatewayError reports a failed call to an external provider. Checkout
// treats it as abort-before-persist when raised by the payment step.
type GatewayError struct {
	Provider string
	Status   int
	Body     string
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Provider, e.Status, e.Body)
}

// Payment charges a card source for an amount in cents.
type Payment interface {
	Charge(ctx context.Context, source string, amountCents int, description string) error
}

// StripeClient posts charges to the Stripe v1 API.
type StripeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewStripeClient builds a client authenticating with apiKey.
func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{
		apiKey:  apiKey,
		baseURL: "https://api.stripe.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint. Tests only.
func (s *StripeClient) WithBaseURL(base string) *StripeClient {
	s.baseURL = base
	return s
}

// Charge creates a single charge in USD.
func (s *StripeClient) Charge(ctx context.Context, source string, amountCents int, description string) error {
	form := url.Values{}
	form.Set("amount", strconv.Itoa(amountCents))
	form.Set("currency", "usd")
	form.Set("source", source)
	form.Set("description", description)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return GatewayError{Provider: "stripe", Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
