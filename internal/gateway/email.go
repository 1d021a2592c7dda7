package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Email delivers the order receipt after a successful checkout.
type Email interface {
	SendReceipt(ctx context.Context, to, subject, body string) error
}

// MailgunClient posts messages through the Mailgun HTTP API.
type MailgunClient struct {
	apiKey  string
	domain  string
	sender  string
	baseURL string
	client  *http.Client
}

// NewMailgunClient builds a client sending from sender via the given
// Mailgun domain.
func NewMailgunClient(apiKey, domain, sender string) *MailgunClient {
	return &MailgunClient{
		apiKey:  apiKey,
		domain:  domain,
		sender:  sender,
		baseURL: "https://api.mailgun.net",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL points the client at a different endpoint. Tests only.
func (m *MailgunClient) WithBaseURL(base string) *MailgunClient {
	m.baseURL = base
	return m
}

// SendReceipt mails a plain-text receipt.
func (m *MailgunClient) SendReceipt(ctx context.Context, to, subject, body string) error {
	form := url.Values{}
	form.Set("from", m.sender)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", m.baseURL, m.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return GatewayError{Provider: "mailgun", Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
