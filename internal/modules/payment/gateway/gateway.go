package gateway

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/imroc/req/v3"
)

// CheckoutSession is what the provider hands back when a checkout starts.
// The user finishes payment at URL; the provider later confirms SessionID.
type CheckoutSession struct {
	SessionID string
	URL       string
}

// PaymentGateway is the contract against the external payment provider.
// Only the two calls the premium flow needs are modeled.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, userID, email string) (*CheckoutSession, error)
	// VerifySession asks the provider whether the session has been paid.
	VerifySession(ctx context.Context, sessionID string) (bool, error)
}

type httpGateway struct {
	client     *req.Client
	priceID    string
	successURL string
	cancelURL  string
}

type sessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

// NewHTTPGateway talks to a Stripe-style checkout API. PAYMENT_API_URL,
// PAYMENT_SECRET_KEY and PAYMENT_PREMIUM_PRICE_ID come from the environment.
func NewHTTPGateway() (PaymentGateway, error) {
	apiURL := os.Getenv("PAYMENT_API_URL")
	secretKey := os.Getenv("PAYMENT_SECRET_KEY")
	if apiURL == "" || secretKey == "" {
		return nil, fmt.Errorf("PAYMENT_API_URL and PAYMENT_SECRET_KEY must be configured")
	}

	client := req.C().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetCommonBearerAuthToken(secretKey).
		SetTimeout(15 * time.Second)

	return &httpGateway{
		client:     client,
		priceID:    os.Getenv("PAYMENT_PREMIUM_PRICE_ID"),
		successURL: envOrDefault("PAYMENT_SUCCESS_URL", "http://localhost:5173/settings?payment=success"),
		cancelURL:  envOrDefault("PAYMENT_CANCEL_URL", "http://localhost:5173/settings?payment=cancel"),
	}, nil
}

func (g *httpGateway) CreateCheckoutSession(ctx context.Context, userID, email string) (*CheckoutSession, error) {
	body := map[string]interface{}{
		"mode":           "subscription",
		"price":          g.priceID,
		"quantity":       1,
		"customer_email": email,
		"metadata":       map[string]string{"userId": userID},
		"success_url":    g.successURL,
		"cancel_url":     g.cancelURL,
	}

	var out sessionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(body).
		Post("/v1/checkout/sessions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("checkout session request ended with %d status: %s", resp.StatusCode, resp.String())
	}
	if err := resp.UnmarshalJson(&out); err != nil {
		return nil, fmt.Errorf("checkout session response unmarshal: %w", err)
	}

	return &CheckoutSession{SessionID: out.ID, URL: out.URL}, nil
}

func (g *httpGateway) VerifySession(ctx context.Context, sessionID string) (bool, error) {
	var out sessionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		Get("/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != 200 {
		return false, fmt.Errorf("session verify request ended with %d status: %s", resp.StatusCode, resp.String())
	}
	if err := resp.UnmarshalJson(&out); err != nil {
		return false, fmt.Errorf("session verify response unmarshal: %w", err)
	}

	return out.PaymentStatus == "paid", nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
