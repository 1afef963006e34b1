package payment

import (
	"context"
	"encoding/json"
)

// IdentityResult is the validator's answer for one MSISDN.
type IdentityResult struct {
	CustomerName string `json:"customer_name"`
	Message      string `json:"message"`
	Success      bool   `json:"success"`
}

type PaymentRequest struct {
	Amount string
	Number string
	Refer  string
}

// IdentityValidator resolves a mobile-money MSISDN to its registered customer.
type IdentityValidator interface {
	ValidateMSISDN(ctx context.Context, msisdn string) (*IdentityResult, error)
}

// Gateway is the payment processor. Both calls return the provider's raw JSON body on 2xx.
type Gateway interface {
	ProcessPayment(ctx context.Context, req PaymentRequest) (json.RawMessage, error)
	CheckTransactionStatus(ctx context.Context, reference string) (json.RawMessage, error)
}
