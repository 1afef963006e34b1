// Package keepalive pings the service's own health endpoint so the hosting
// platform does not idle it.
package keepalive

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lucopay/config"
	"lucopay/internal/logger"
	"lucopay/internal/metrics"
)

const HealthPath = "/health"

type Pinger struct {
	url      string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	log      *slog.Logger
}

func New(cfg config.KeepAliveConfig) *Pinger {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Pinger{
		url:      cfg.AppURL + HealthPath,
		interval: cfg.Interval,
		timeout:  timeout,
		client:   &http.Client{},
		log:      logger.WithComponent("keepalive"),
	}
}

// Run pings immediately and then once per interval until ctx is cancelled.
// Failures are logged; the next tick is the retry.
func (p *Pinger) Run(ctx context.Context) {
	if p.interval <= 0 {
		p.log.Info("keep-alive disabled")
		return
	}
	p.log.Info("keep-alive started", "url", p.url, "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.ping(ctx)
		select {
		case <-ctx.Done():
			p.log.Info("keep-alive stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.log.Error("keep-alive request build failed", "error", err)
		metrics.IncKeepAlive("error")
		return
	}
	p.log.Debug("sending keep-alive ping", "url", p.url)
	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		p.log.Error("keep-alive ping failed", "error", err)
		metrics.IncKeepAlive("error")
		return
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Warn("keep-alive response", "status", resp.StatusCode)
		metrics.IncKeepAlive(strconv.Itoa(resp.StatusCode))
		return
	}
	p.log.Info("keep-alive response", "status", resp.StatusCode)
	metrics.IncKeepAlive("ok")
}
