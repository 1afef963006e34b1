package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lucopay/config"
)

// GatewayClient talks to the payment processor. Credentials are sent in every request body.
type GatewayClient struct {
	BaseURL    string
	Username   string
	Password   string
	SuccessURL string
	FailedURL  string
	timeout    time.Duration
	client     *http.Client
}

func NewGatewayClient(cfg config.PaymentConfig) *GatewayClient {
	return &GatewayClient{
		BaseURL:    cfg.BaseURL,
		Username:   cfg.Username,
		Password:   cfg.Password,
		SuccessURL: cfg.SuccessURL,
		FailedURL:  cfg.FailedURL,
		timeout:    cfg.Timeout,
		client:     &http.Client{},
	}
}

type processPaymentReq struct {
	Amount     string `json:"amount"`
	Number     string `json:"number"`
	Refer      string `json:"refer"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	SuccessURL string `json:"success-re-url"`
	FailedURL  string `json:"failed-re-url"`
}

type transactionStatusReq struct {
	APIKey      string `json:"apikey"`
	APIPassword string `json:"apipassword"`
	Reference   string `json:"reference"`
}

func (c *GatewayClient) ProcessPayment(ctx context.Context, req PaymentRequest) (json.RawMessage, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	payload := processPaymentReq{
		Amount:     req.Amount,
		Number:     req.Number,
		Refer:      req.Refer,
		Username:   c.Username,
		Password:   c.Password,
		SuccessURL: c.SuccessURL,
		FailedURL:  c.FailedURL,
	}
	return c.call(ctx, "process_payment", payload)
}

func (c *GatewayClient) CheckTransactionStatus(ctx context.Context, reference string) (json.RawMessage, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	payload := transactionStatusReq{
		APIKey:      c.Username,
		APIPassword: c.Password,
		Reference:   reference,
	}
	return c.call(ctx, "check_transaction_status", payload)
}

func (c *GatewayClient) call(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	body, err := postJSON(ctx, c.client, op, c.BaseURL+"/"+op, nil, payload)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedResponse)
	}
	return json.RawMessage(body), nil
}
