package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const stripeBaseURL = "https://api.stripe.com"

type StripeCheckoutParams struct {
	AmountCents   int64
	Currency      string
	SuccessURL    string
	CancelURL     string
	BookingID     string
	Description   string
	CustomerEmail string
}

// StripeSession is the subset of a checkout session the payment flow needs.
type StripeSession struct {
	ID            string
	URL           string
	PaymentStatus string
	BookingID     string
}

// StripeClient is the Stripe checkout API surface the payment handlers depend
// on.
type StripeClient interface {
	CreateCheckoutSession(params StripeCheckoutParams) (*StripeSession, error)
	RetrieveSession(sessionID string) (*StripeSession, error)
}

type stripeHTTP struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewStripe creates an HTTP Stripe client. An empty baseURL selects the
// production API.
func NewStripe(secretKey, baseURL string) StripeClient {
	if baseURL == "" {
		baseURL = stripeBaseURL
	}
	return &stripeHTTP{secretKey: secretKey, baseURL: baseURL, client: &http.Client{}}
}

type stripeSessionPayload struct {
	ID                string            `json:"id"`
	URL               string            `json:"url"`
	PaymentStatus     string            `json:"payment_status"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
}

func (s *stripeHTTP) CreateCheckoutSession(params StripeCheckoutParams) (*StripeSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(params.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Nova Rides – "+params.Description)
	form.Set("line_items[0][price_data][product_data][description]", "Booking "+params.BookingID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("metadata[bookingId]", params.BookingID)
	form.Set("client_reference_id", params.BookingID)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	httpReq, err := http.NewRequest("POST", s.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe create session failed: %s", resp.Status)
	}

	var out stripeSessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	if out.URL == "" {
		return nil, errors.New("stripe session has no URL")
	}

	return sessionFromPayload(out), nil
}

func (s *stripeHTTP) RetrieveSession(sessionID string) (*StripeSession, error) {
	httpReq, err := http.NewRequest("GET", s.baseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe retrieve session failed: %s", resp.Status)
	}

	var out stripeSessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("stripe retrieve session: %w", err)
	}

	return sessionFromPayload(out), nil
}

func sessionFromPayload(p stripeSessionPayload) *StripeSession {
	bookingID := p.Metadata["bookingId"]
	if bookingID == "" {
		bookingID = p.ClientReferenceID
	}
	return &StripeSession{
		ID:            p.ID,
		URL:           p.URL,
		PaymentStatus: p.PaymentStatus,
		BookingID:     bookingID,
	}
}
