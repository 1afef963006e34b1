package models

import "encoding/json"

// PaymentRequest is the inbound body of /api/v1/request_payment. Refer is minted when empty.
type PaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	Number string `json:"number" binding:"required"`
	Refer  string `json:"refer"`
}

type PaymentResponse struct {
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Reference string          `json:"reference"`
	Signature string          `json:"signature,omitempty"`
}
