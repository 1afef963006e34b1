package service

import (
	"context"

	"lucopay/internal/models"
	"lucopay/pkg/payment"
)

type IdentityService struct {
	validator payment.IdentityValidator
}

func NewIdentityService(validator payment.IdentityValidator) *IdentityService {
	return &IdentityService{validator: validator}
}

// Validate looks up msisdn with the provider and maps the result into the public response shape.
func (s *IdentityService) Validate(ctx context.Context, msisdn string) (*models.IdentityResponse, error) {
	res, err := s.validator.ValidateMSISDN(ctx, msisdn)
	recordUpstream("validate_msisdn", err)
	if err != nil {
		return nil, err
	}
	return &models.IdentityResponse{
		IdentityName: res.CustomerName,
		Message:      res.Message,
		Success:      res.Success,
	}, nil
}
