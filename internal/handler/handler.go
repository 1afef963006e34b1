package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lucopay/pkg/payment"
)

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// abortUpstream relays a provider failure. Non-2xx answers keep the provider's status and raw body;
// everything else becomes a 500 with fallback as detail.
func abortUpstream(c *gin.Context, err error, prefix, fallback string) {
	var upErr *payment.UpstreamError
	if errors.As(err, &upErr) {
		abortDetail(c, upErr.HTTPStatus(), prefix+": "+upErr.Body)
		return
	}
	abortDetail(c, http.StatusInternalServerError, fallback)
}
