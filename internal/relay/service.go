package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lead-call-relay/internal/calls"
	"lead-call-relay/internal/leads"
	"lead-call-relay/internal/metrics"
	"lead-call-relay/pkg/logger"
)

// Dialer places one outbound call through the telephony provider.
type Dialer interface {
	PlaceCall(ctx context.Context, req DialRequest) (DialResult, error)
}

type DialRequest struct {
	LeadID string
	To     string

	// CallbackURL is fetched by the provider when the callee answers.
	CallbackURL string
}

type DialResult struct {
	ProviderCallID string
	Status         calls.Status
}

// Synthesizer returns a playable audio URL, or ok=false when none is available.
type Synthesizer interface {
	AudioURL(ctx context.Context, text string) (url string, ok bool)
}

// Service ties the lead store to the telephony and TTS providers.
// It keeps no per-call state; the lead id is the only correlation key.
type Service struct {
	leads         leads.Store
	dialer        Dialer
	voice         Synthesizer
	publicBaseURL string
	metrics       *metrics.Metrics

	Now func() time.Time
}

func NewService(store leads.Store, dialer Dialer, voice Synthesizer, publicBaseURL string, m *metrics.Metrics) *Service {
	return &Service{
		leads:         store,
		dialer:        dialer,
		voice:         voice,
		publicBaseURL: publicBaseURL,
		metrics:       m,
		Now:           time.Now,
	}
}

type TriggerResult struct {
	LeadID         string
	Phone          string
	ProviderCallID string
}

// TriggerCall dials the lead's phone with the script URL as the answer callback.
// Unknown leads return leads.ErrNotFound and nothing is dialed.
func (s *Service) TriggerCall(ctx context.Context, leadID string) (TriggerResult, error) {
	res, err := s.triggerCall(ctx, leadID)
	switch {
	case err == nil:
		s.metrics.CallTriggered(metrics.TriggerSuccess)
	case errors.Is(err, leads.ErrNotFound):
		s.metrics.CallTriggered(metrics.TriggerNotFound)
	default:
		s.metrics.CallTriggered(metrics.TriggerError)
	}
	return res, err
}

func (s *Service) triggerCall(ctx context.Context, leadID string) (TriggerResult, error) {
	if s.leads == nil || s.dialer == nil {
		return TriggerResult{}, errors.New("relay: service not configured")
	}
	if strings.TrimSpace(leadID) == "" {
		return TriggerResult{}, leads.ErrNotFound
	}

	lead, err := s.leads.Get(ctx, leadID)
	if err != nil {
		return TriggerResult{}, err
	}
	if strings.TrimSpace(lead.Phone) == "" {
		return TriggerResult{}, fmt.Errorf("%w: lead %s has no phone", leads.ErrInvalidLead, leadID)
	}

	dial, err := s.dialer.PlaceCall(ctx, DialRequest{
		LeadID:      leadID,
		To:          lead.Phone,
		CallbackURL: ScriptURL(s.publicBaseURL, leadID),
	})
	if err != nil {
		return TriggerResult{}, err
	}

	logger.From(ctx).Info("call triggered",
		"lead_id", leadID,
		"provider_call_id", dial.ProviderCallID,
		"provider_status", string(dial.Status),
	)
	return TriggerResult{LeadID: leadID, Phone: lead.Phone, ProviderCallID: dial.ProviderCallID}, nil
}

// PrepareScript builds the call script for a lead. It never fails: a missing
// lead gets placeholder values and a TTS failure falls back to spoken text.
func (s *Service) PrepareScript(ctx context.Context, leadID string) Script {
	log := logger.From(ctx)

	var name, project string
	if s.leads != nil {
		lead, err := s.leads.Get(ctx, leadID)
		switch {
		case err == nil:
			name, project = lead.Name, lead.Project
		case errors.Is(err, leads.ErrNotFound):
			log.Warn("script requested for unknown lead, using placeholders", "lead_id", leadID)
		default:
			log.Error("lead lookup failed, using placeholders", "lead_id", leadID, "err", err)
		}
	}

	sc := Script{
		Text:         Prompt(name, project),
		Language:     ScriptLanguage,
		GatherAction: StatusURL(s.publicBaseURL, leadID),
	}
	if s.voice != nil {
		if u, ok := s.voice.AudioURL(ctx, sc.Text); ok {
			sc.AudioURL = u
		}
	}

	if sc.AudioURL != "" {
		s.metrics.ScriptRendered(metrics.TTSAudio)
	} else {
		s.metrics.ScriptRendered(metrics.TTSFallback)
	}
	return sc
}

// RecordOutcome maps the keypress and call status to a lead status and
// overwrites the lead's outcome fields. Absent fields are stored as null.
// The mapped status is returned even when the store write fails.
func (s *Service) RecordOutcome(ctx context.Context, leadID string, digits, callStatus *string) (leads.Status, error) {
	status := leads.StatusFor(digits, callStatus)
	s.metrics.OutcomeRecorded(string(status))

	if s.leads == nil {
		return status, errors.New("relay: service not configured")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	err := s.leads.UpdateOutcome(ctx, leadID, leads.OutcomeUpdate{
		Status:         status,
		LastCallStatus: callStatus,
		DTMFInput:      digits,
		LastCalledAt:   now().UTC(),
	})
	if err != nil {
		s.metrics.LeadUpdateFailed()
		return status, err
	}

	log := logger.From(ctx)
	if callStatus != nil && !calls.Status(*callStatus).Terminal() {
		log.Debug("outcome recorded before call ended", "lead_id", leadID, "call_status", *callStatus)
	}
	log.Info("lead outcome recorded",
		"lead_id", leadID,
		"status", string(status),
		"digits", deref(digits),
		"call_status", deref(callStatus),
	)
	return status, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
