package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"lucopay/config"
	"lucopay/internal/domain"
	"lucopay/internal/logger"
	"lucopay/internal/models"
	"lucopay/pkg/payment"
	"lucopay/pkg/reference"
)

// PaymentService builds provider requests and reconciles status responses.
type PaymentService struct {
	gateway   payment.Gateway
	refLength int
	secret    string
	now       func() time.Time
	log       *slog.Logger
}

func NewPaymentService(gateway payment.Gateway, cfg config.ReferenceConfig) *PaymentService {
	length := cfg.Length
	if length <= 0 {
		length = reference.PaymentLength
	}
	return &PaymentService{
		gateway:   gateway,
		refLength: length,
		secret:    cfg.Secret,
		now:       time.Now,
		log:       logger.WithComponent("payment_service"),
	}
}

// RequestPayment forwards req to the processor. A reference is minted and signed per call when the caller sends none;
// caller-supplied references are forwarded unsigned.
func (s *PaymentService) RequestPayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error) {
	ref := reference.Signed{Reference: req.Refer}
	if ref.Reference == "" {
		minted, err := reference.New(s.refLength, s.secret)
		if err != nil {
			return nil, fmt.Errorf("mint reference: %w", err)
		}
		ref = minted
	}
	s.log.Info("requesting payment", "reference", ref.Reference, "signed", ref.Signature != "")

	data, err := s.gateway.ProcessPayment(ctx, payment.PaymentRequest{
		Amount: req.Amount,
		Number: req.Number,
		Refer:  ref.Reference,
	})
	recordUpstream("process_payment", err)
	if err != nil {
		return nil, err
	}
	return &models.PaymentResponse{
		Message:   domain.MsgPaymentRequested,
		Data:      data,
		Reference: ref.Reference,
		Signature: ref.Signature,
	}, nil
}

// transactionStatus is the processor's status body. Fields are raw because the provider
// is inconsistent about strings vs numbers.
type transactionStatus struct {
	Status  json.RawMessage `json:"status"`
	Amount  json.RawMessage `json:"amount"`
	Number  json.RawMessage `json:"number"`
	Created json.RawMessage `json:"created"`
	TransID json.RawMessage `json:"transid"`
}

// CheckStatus queries the processor for ref and normalizes the answer.
func (s *PaymentService) CheckStatus(ctx context.Context, ref string) (*models.WebhookResponse, error) {
	s.log.Info("checking transaction status", "reference", ref)

	raw, err := s.gateway.CheckTransactionStatus(ctx, ref)
	recordUpstream("check_transaction_status", err)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ref, raw)
}

func (s *PaymentService) reconcile(ref string, raw json.RawMessage) (*models.WebhookResponse, error) {
	var st transactionStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("check_transaction_status: %w: %v", payment.ErrMalformedResponse, err)
	}

	out := &models.WebhookResponse{
		Message:   domain.MsgTransactionFound,
		Reference: ref,
	}
	var err error
	if out.Status, err = scalarString(st.Status); err != nil {
		return nil, malformed("status", err)
	}
	if out.Number, err = scalarString(st.Number); err != nil {
		return nil, malformed("number", err)
	}
	if out.Created, err = scalarString(st.Created); err != nil {
		return nil, malformed("created", err)
	}
	if out.TransID, err = scalarString(st.TransID); err != nil {
		return nil, malformed("transid", err)
	}
	if out.Amount, err = amount(st.Amount); err != nil {
		return nil, malformed("amount", err)
	}

	if out.Status == "" {
		out.Status = domain.StatusUnknown
	}
	if out.Created == "" {
		out.Created = s.now().UTC().Format(time.RFC3339)
	}
	if out.TransID == "" {
		out.TransID = ref
	}
	return out, nil
}

func malformed(field string, err error) error {
	return fmt.Errorf("check_transaction_status: %w: %s: %v", payment.ErrMalformedResponse, field, err)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// scalarString accepts a JSON string or number; absent and null become "".
func scalarString(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}

// amount accepts a JSON number or numeric string; absent, null and "" become nil.
func amount(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("expected number, got %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite amount %q", s)
	}
	return &f, nil
}
