package main

import (
	"context"
	"net/http"

	"lead-call-relay/internal/httpapi"
	"lead-call-relay/internal/metrics"
	"lead-call-relay/internal/relay"
	"lead-call-relay/internal/reporting"
	"lead-call-relay/internal/telephony"
	"lead-call-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	Relay     *relay.Service
	Reporting *reporting.Service
	Metrics   *metrics.Metrics
	Ready     func(ctx context.Context) error
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				logger.FromGin(c).Warn("readiness check failed", "err", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// Dashboard API. No auth: the dashboard and relay share a private deployment.
	api := r.Group("/api")
	{
		h := httpapi.Handlers{Calls: d.Relay, Reporting: d.Reporting}
		api.POST("/call/:lead_id", h.TriggerCall)
		api.GET("/leads/summary", h.LeadsSummary)
	}

	// Telephony provider callbacks. Always 200 + XML.
	webhooks := r.Group("/webhook")
	{
		h := telephony.WebhookHandler{Relay: d.Relay}
		webhooks.POST("/ivr/:lead_id", h.HandleScript)
		webhooks.POST("/status/:lead_id", h.HandleOutcome)
	}
}
