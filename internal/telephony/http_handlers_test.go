package telephony

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lead-call-relay/internal/leads"
	"lead-call-relay/internal/relay"

	"github.com/gin-gonic/gin"
)

type noVoice struct{}

func (noVoice) AudioURL(ctx context.Context, text string) (string, bool) { return "", false }

type failingStore struct{}

func (failingStore) Get(ctx context.Context, id string) (leads.Lead, error) {
	return leads.Lead{}, errors.New("store down")
}
func (failingStore) UpdateOutcome(ctx context.Context, id string, u leads.OutcomeUpdate) error {
	return errors.New("store down")
}
func (failingStore) List(ctx context.Context) ([]leads.Lead, error) {
	return nil, errors.New("store down")
}

func newWebhookRouter(store leads.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := relay.NewService(store, nil, noVoice{}, "http://127.0.0.1:8000", nil)
	h := WebhookHandler{Relay: svc}

	r := gin.New()
	r.POST("/webhook/ivr/:lead_id", h.HandleScript)
	r.POST("/webhook/status/:lead_id", h.HandleOutcome)
	return r
}

func TestHandleScript_RendersSayForKnownLead(t *testing.T) {
	repo := leads.NewMemoryRepo(leads.Lead{ID: "L1", Phone: "+911234567890", Name: "Rahul", Project: "Skyline"})
	r := newWebhookRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/ivr/L1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("unexpected content type %q", ct)
	}
	p := parseDoc(t, w.Body.String())
	if len(p.Say) != 1 || !strings.Contains(p.Say[0].Text, "Namaskar Rahul!") {
		t.Fatalf("unexpected markup: %s", w.Body.String())
	}
	assertGather(t, p, "/webhook/status/L1")
}

func TestHandleScript_StoreFailureStillReturnsMarkup(t *testing.T) {
	r := newWebhookRouter(failingStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhook/ivr/L1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	p := parseDoc(t, w.Body.String())
	if len(p.Say) != 1 || !strings.Contains(p.Say[0].Text, "sir/madam") {
		t.Fatalf("expected placeholder script: %s", w.Body.String())
	}
}

func TestHandleOutcome_UpdatesLeadAndHangsUp(t *testing.T) {
	repo := leads.NewMemoryRepo(leads.Lead{ID: "L1", Phone: "+911234567890", Status: leads.StatusPending})
	r := newWebhookRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/webhook/status/L1", strings.NewReader("Digits=1&CallStatus=completed"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if p := parseDoc(t, w.Body.String()); len(p.Hangup) != 1 {
		t.Fatalf("expected hangup markup: %s", w.Body.String())
	}

	l, _ := repo.Get(context.Background(), "L1")
	if l.Status != leads.StatusBooked {
		t.Fatalf("expected booked, got %q", l.Status)
	}
	if l.LastCallStatus == nil || *l.LastCallStatus != "completed" || l.DTMFInput == nil || *l.DTMFInput != "1" {
		t.Fatalf("expected raw fields stored: %+v", l)
	}
}

func TestHandleOutcome_StoreFailureStillHangsUp(t *testing.T) {
	r := newWebhookRouter(failingStore{})

	req := httptest.NewRequest(http.MethodPost, "/webhook/status/L1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if p := parseDoc(t, w.Body.String()); len(p.Hangup) != 1 {
		t.Fatalf("expected hangup markup: %s", w.Body.String())
	}
}

func TestHandleOutcome_MultipartKeypressBooksLead(t *testing.T) {
	repo := leads.NewMemoryRepo(leads.Lead{ID: "L1", Phone: "+911234567890", Status: leads.StatusPending})
	r := newWebhookRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/webhook/status/L1", map[string]string{"Digits": "1", "CallStatus": "completed"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	l, _ := repo.Get(context.Background(), "L1")
	if l.Status != leads.StatusBooked {
		t.Fatalf("expected booked, got %q", l.Status)
	}
	if l.DTMFInput == nil || *l.DTMFInput != "1" || l.LastCallStatus == nil || *l.LastCallStatus != "completed" {
		t.Fatalf("expected raw fields stored: %+v", l)
	}
}
