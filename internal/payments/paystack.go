package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const paystackBaseURL = "https://api.paystack.co"

type PaystackInitializeRequest struct {
	Email       string
	AmountKobo  int64
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

type PaystackInitializeResponse struct {
	AuthorizationURL string
	Reference        string
}

type PaystackVerifyResponse struct {
	Success    bool
	AmountKobo int64
}

// PaystackClient is the Paystack transaction API surface the payment handlers
// depend on.
type PaystackClient interface {
	Initialize(req PaystackInitializeRequest) (*PaystackInitializeResponse, error)
	Verify(reference string) (*PaystackVerifyResponse, error)
}

type paystackHTTP struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

// NewPaystack creates an HTTP Paystack client. An empty baseURL selects the
// production API.
func NewPaystack(secretKey, baseURL string) PaystackClient {
	if baseURL == "" {
		baseURL = paystackBaseURL
	}
	return &paystackHTTP{secretKey: secretKey, baseURL: baseURL, client: &http.Client{}}
}

func (p *paystackHTTP) Initialize(req PaystackInitializeRequest) (*PaystackInitializeResponse, error) {
	body := map[string]any{
		"email":        req.Email,
		"amount":       req.AmountKobo,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
		"metadata":     req.Metadata,
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequest("POST", p.baseURL+"/transaction/initialize", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			AuthorizationURL string `json:"authorization_url"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paystack initialize: %w", err)
	}
	if !out.Status || out.Data.AuthorizationURL == "" {
		if out.Message != "" {
			return nil, errors.New("paystack: " + out.Message)
		}
		return nil, errors.New("paystack initialization failed")
	}

	return &PaystackInitializeResponse{
		AuthorizationURL: out.Data.AuthorizationURL,
		Reference:        out.Data.Reference,
	}, nil
}

func (p *paystackHTTP) Verify(reference string) (*PaystackVerifyResponse, error) {
	httpReq, err := http.NewRequest("GET", p.baseURL+"/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.secretKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out struct {
		Status bool `json:"status"`
		Data   struct {
			Status string `json:"status"`
			Amount int64  `json:"amount"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paystack verify: %w", err)
	}
	if !out.Status || out.Data.Status != "success" {
		return &PaystackVerifyResponse{Success: false}, nil
	}

	return &PaystackVerifyResponse{Success: true, AmountKobo: out.Data.Amount}, nil
}
