package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// SessionLineItem is one line of a hosted checkout session. Unit amounts are
// in centavos.
type SessionLineItem struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	UnitAmountCents int64  `json:"unit_amount"`
	Quantity        int    `json:"quantity"`
	Currency        string `json:"currency"`
}

// CheckoutSessionRequest is the payload sent to the hosted payment processor
// to open a checkout session.
type CheckoutSessionRequest struct {
	CustomerEmail      string            `json:"customer_email"`
	LineItems          []SessionLineItem `json:"line_items"`
	PaymentMethodTypes []string          `json:"payment_method_types"`
	SuccessURL         string            `json:"success_url"`
	CancelURL          string            `json:"cancel_url"`
	ExpiresAt          int64             `json:"expires_at"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession is the processor's view of a session.
type CheckoutSession struct {
	ID               string            `json:"id"`
	URL              string            `json:"url"`
	PaymentStatus    string            `json:"payment_status"`
	AmountTotalCents int64             `json:"amount_total"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// PaymentGateway is the boundary to the hosted payment processor. The
// storefront never talks to card networks itself; it opens a session and
// redirects the customer to the returned URL.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// HostedGateway talks to the payment processor's REST API.
type HostedGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

// NewHostedGateway creates a gateway client for the given API base URL and
// secret key.
func NewHostedGateway(baseURL, apiKey string) *HostedGateway {
	return &HostedGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		timeout: 10 * time.Second,
	}
}

var _ PaymentGateway = (*HostedGateway)(nil)

// CreateSession opens a checkout session with the processor.
func (g *HostedGateway) CreateSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build session request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "payment processor unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session response")
	}
	if session.URL == "" {
		return nil, errors.New("payment processor returned session without redirect URL")
	}
	return &session, nil
}

// GetSession retrieves the current state of a checkout session.
func (g *HostedGateway) GetSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/checkout/sessions/%s", g.baseURL, sessionID), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build session lookup")
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "payment processor unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.Errorf("checkout session %s not found", sessionID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session response")
	}
	return &session, nil
}
