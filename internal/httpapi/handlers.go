package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lead-call-relay/internal/leads"
	"lead-call-relay/internal/relay"
	"lead-call-relay/internal/reporting"
	"lead-call-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups the dashboard-facing JSON handlers.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Calls     CallTrigger
	Reporting *reporting.Service
}

type CallTrigger interface {
	TriggerCall(ctx context.Context, leadID string) (relay.TriggerResult, error)
}

type triggerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	ProviderCallID string `json:"provider_call_id,omitempty"`
}

// --- Calls ---

// TriggerCall dials a lead. 404 when the lead does not exist, 500 for any
// other failure; the message carries the error text for the dashboard.
func (h Handlers) TriggerCall(c *gin.Context) {
	log := logger.FromGin(c)
	if h.Calls == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, triggerResponse{Status: "error", Message: "call trigger not configured"})
		return
	}
	leadID := c.Param("lead_id")

	res, err := h.Calls.TriggerCall(c.Request.Context(), leadID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, triggerResponse{
			Status:         "success",
			Message:        fmt.Sprintf("Call triggered for %s. Status updates coming soon.", res.Phone),
			ProviderCallID: res.ProviderCallID,
		})
	case errors.Is(err, leads.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, triggerResponse{Status: "error", Message: "Lead not found"})
	default:
		log.Error("call trigger failed", "lead_id", leadID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, triggerResponse{Status: "error", Message: err.Error()})
	}
}

// --- Reporting ---

// LeadsSummary accepts optional from/to query params (RFC 3339) filtering on last_called_at.
func (h Handlers) LeadsSummary(c *gin.Context) {
	if h.Reporting == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}

	var req reporting.LeadsSummaryRequest
	var err error
	if req.Range.From, err = optionalTime(c.Query("from")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC 3339"})
		return
	}
	if req.Range.To, err = optionalTime(c.Query("to")); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC 3339"})
		return
	}

	out, err := h.Reporting.LeadsSummary(c.Request.Context(), req)
	if errors.Is(err, reporting.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from and to must both be set, with to after from"})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("leads summary failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func optionalTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
