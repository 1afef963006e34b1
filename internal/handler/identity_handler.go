package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucopay/internal/domain"
	"lucopay/internal/logger"
	"lucopay/internal/models"
	"lucopay/internal/service"
)

type IdentityHandler struct {
	identitySvc *service.IdentityService
	log         *slog.Logger
}

func NewIdentityHandler(identitySvc *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identitySvc: identitySvc, log: logger.WithComponent("identity_handler")}
}

// ValidateMSISDN handles POST /identity/msisdn. Any provider failure is a 500; no partial result.
func (h *IdentityHandler) ValidateMSISDN(c *gin.Context) {
	var req models.IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortDetail(c, http.StatusBadRequest, domain.MsgMSISDNRequired)
		return
	}
	res, err := h.identitySvc.Validate(c.Request.Context(), req.MSISDN)
	if err != nil {
		h.log.Error("msisdn validation failed", "error", err)
		abortDetail(c, http.StatusInternalServerError, domain.MsgValidationFailed)
		return
	}
	c.JSON(http.StatusOK, res)
}
