package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucopay/internal/domain"
	"lucopay/internal/logger"
	"lucopay/internal/models"
	"lucopay/internal/service"
	"lucopay/pkg/payment"
)

type PaymentHandler struct {
	paymentSvc *service.PaymentService
	log        *slog.Logger
}

func NewPaymentHandler(paymentSvc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, log: logger.WithComponent("payment_handler")}
}

// RequestPayment handles POST /api/v1/request_payment.
func (h *PaymentHandler) RequestPayment(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "amount and number are required")
		return
	}
	res, err := h.paymentSvc.RequestPayment(c.Request.Context(), req)
	if err != nil {
		h.log.Error("payment request failed", "error", err)
		abortUpstream(c, err, domain.PrefixPaymentFailed, domain.MsgInternalError)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Webhook handles POST /api/v1/payment_webhook: looks up the transaction by reference and
// returns the normalized status.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req models.TransReference
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, "reference is required")
		return
	}
	h.log.Info("received webhook", "reference", req.Reference)

	res, err := h.paymentSvc.CheckStatus(c.Request.Context(), req.Reference)
	if err != nil {
		h.log.Error("transaction status check failed", "reference", req.Reference, "error", err)
		fallback := domain.MsgFetchTxUnavailable
		if errors.Is(err, payment.ErrMalformedResponse) {
			fallback = domain.MsgFetchTxMalformed
		}
		abortUpstream(c, err, domain.PrefixFetchTxFailed, fallback)
		return
	}
	c.JSON(http.StatusOK, res)
}
