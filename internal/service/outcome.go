package service

import (
	"errors"

	"lucopay/internal/metrics"
	"lucopay/pkg/payment"
)

func recordUpstream(op string, err error) {
	metrics.IncUpstream(op, outcome(err))
}

func outcome(err error) string {
	var upErr *payment.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &upErr):
		return "upstream_error"
	case errors.Is(err, payment.ErrMalformedResponse):
		return "malformed"
	default:
		return "transport_error"
	}
}
