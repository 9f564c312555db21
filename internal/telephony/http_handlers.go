package telephony

import (
	"context"
	"net/http"

	"lead-call-relay/internal/leads"
	"lead-call-relay/internal/relay"
	"lead-call-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Scripter is the part of the relay the provider callbacks drive.
type Scripter interface {
	PrepareScript(ctx context.Context, leadID string) relay.Script
	RecordOutcome(ctx context.Context, leadID string, digits, callStatus *string) (leads.Status, error)
}

// WebhookHandler serves the provider-facing callbacks.
//
// Both endpoints always answer 200 with XML: an error page in the middle of a
// live call drops the callee, so failures are logged and absorbed here.
type WebhookHandler struct {
	Relay Scripter
}

// HandleScript returns the call markup once the callee answers.
func (h WebhookHandler) HandleScript(c *gin.Context) {
	log := logger.FromGin(c)
	leadID := c.Param("lead_id")

	sc := h.Relay.PrepareScript(c.Request.Context(), leadID)
	doc, err := RenderScript(sc)
	if err != nil {
		log.Error("script render failed", "lead_id", leadID, "err", err)
		writeXML(c, hangupFallback)
		return
	}
	writeXML(c, doc)
}

// HandleOutcome records the keypress and call status, then hangs up.
func (h WebhookHandler) HandleOutcome(c *gin.Context) {
	log := logger.FromGin(c)
	leadID := c.Param("lead_id")

	form, err := ParseOutcomeForm(c.Request)
	if err != nil {
		// Record with no fields rather than drop the callback.
		log.Warn("outcome form parse failed", "lead_id", leadID, "err", err)
	}

	status, err := h.Relay.RecordOutcome(c.Request.Context(), leadID, form.Digits, form.CallStatus)
	if err != nil {
		log.Error("lead outcome update failed", "lead_id", leadID, "status", string(status), "call_sid", form.CallSid, "err", err)
	}

	doc, err := RenderHangup()
	if err != nil {
		doc = hangupFallback
	}
	writeXML(c, doc)
}

func writeXML(c *gin.Context, doc string) {
	c.Data(http.StatusOK, "application/xml", []byte(doc))
}
