// Package paymentgateway resolves payment method tokens against a
// Stripe-style HTTP API.
package paymentgateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

const serviceName = "payment gateway"

type paymentMethodResponse struct {
	ID   string `json:"id"`
	Card *struct {
		Brand    string `json:"brand"`
		Last4    string `json:"last4"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"card"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ ports.PaymentGateway = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolvePaymentMethod calls GET /v1/payment_methods/{token}. An unknown
// token is a validation error; any other failure is an upstream error.
func (c *Client) ResolvePaymentMethod(ctx context.Context, token string) (payment.CardDetails, error) {
	endpoint := fmt.Sprintf("%s/v1/payment_methods/%s", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return payment.CardDetails{}, errs.NewUpstreamError(serviceName, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return payment.CardDetails{}, errs.NewUpstreamError(serviceName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return payment.CardDetails{}, errs.NewValueIsInvalidErrorWithCause("token",
			fmt.Errorf("payment method %q does not exist", token))
	case resp.StatusCode != http.StatusOK:
		return payment.CardDetails{}, errs.NewUpstreamError(serviceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body paymentMethodResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return payment.CardDetails{}, errs.NewUpstreamError(serviceName, fmt.Errorf("decode response: %w", err))
	}
	if body.Card == nil {
		return payment.CardDetails{}, errs.NewValueIsInvalidErrorWithCause("token",
			fmt.Errorf("payment method %q is not a card", token))
	}

	return payment.CardDetails{
		Brand:       body.Card.Brand,
		Last4:       body.Card.Last4,
		ExpiryMonth: body.Card.ExpMonth,
		ExpiryYear:  body.Card.ExpYear,
	}, nil
}
