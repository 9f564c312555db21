package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByLabel(t *testing.T) {
	m := New()
	m.CallTriggered(TriggerSuccess)
	m.CallTriggered(TriggerSuccess)
	m.CallTriggered(TriggerNotFound)
	m.ScriptRendered(TTSFallback)
	m.OutcomeRecorded("booked")
	m.LeadUpdateFailed()

	if got := testutil.ToFloat64(m.callTriggers.WithLabelValues(TriggerSuccess)); got != 2 {
		t.Fatalf("expected 2 successful triggers, got %v", got)
	}
	if got := testutil.ToFloat64(m.callTriggers.WithLabelValues(TriggerNotFound)); got != 1 {
		t.Fatalf("expected 1 not_found trigger, got %v", got)
	}
	if got := testutil.ToFloat64(m.ttsRequests.WithLabelValues(TTSFallback)); got != 1 {
		t.Fatalf("expected 1 fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.updateFailures); got != 1 {
		t.Fatalf("expected 1 update failure, got %v", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.CallTriggered(TriggerError)
	m.ScriptRendered(TTSAudio)
	m.OutcomeRecorded("pending")
	m.LeadUpdateFailed()
}

func TestMetrics_HandlerExposesCounters(t *testing.T) {
	m := New()
	m.OutcomeRecorded("callback")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `relay_lead_outcomes_total{status="callback"} 1`) {
		t.Fatalf("expected outcome counter in exposition:\n%s", body)
	}
}
