package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lucopay/internal/domain"
)

type RootHandler struct {
	startedAt time.Time
}

func NewRootHandler() *RootHandler {
	return &RootHandler{startedAt: time.Now()}
}

func (h *RootHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{domain.MsgWelcomeKey: "True"})
}

// Health is the keep-alive target.
func (h *RootHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"ts":             time.Now().UTC(),
	})
}
