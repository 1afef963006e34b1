package models

type TransReference struct {
	Reference string `json:"reference" binding:"required"`
}

// WebhookResponse is the normalized transaction status. Amount is null when the provider omits it.
type WebhookResponse struct {
	Message   string   `json:"message"`
	Status    string   `json:"status"`
	Amount    *float64 `json:"amount"`
	Number    string   `json:"number"`
	Created   string   `json:"created"`
	TransID   string   `json:"transid"`
	Reference string   `json:"reference"`
}
