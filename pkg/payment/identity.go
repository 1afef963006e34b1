package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lucopay/config"
)

const relworxAccept = "application/vnd.relworx.v2"

// IdentityClient validates MSISDNs against the Relworx mobile-money API.
type IdentityClient struct {
	BaseURL string
	APIKey  string
	timeout time.Duration
	client  *http.Client
}

func NewIdentityClient(cfg config.IdentityConfig) *IdentityClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://payments.relworx.com"
	}
	return &IdentityClient{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		client:  &http.Client{},
	}
}

func (c *IdentityClient) ValidateMSISDN(ctx context.Context, msisdn string) (*IdentityResult, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	headers := map[string]string{
		"Accept":        relworxAccept,
		"Authorization": "Bearer " + c.APIKey,
	}
	body, err := postJSON(ctx, c.client, "validate_msisdn", c.BaseURL+"/api/mobile-money/validate", headers, map[string]string{"msisdn": msisdn})
	if err != nil {
		return nil, err
	}
	var out IdentityResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("validate_msisdn: %w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}
