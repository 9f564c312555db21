package reporting

import (
	"context"
	"errors"

	"lead-call-relay/internal/calls"
	"lead-call-relay/internal/leads"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// LeadLister is the read side of the lead store.
type LeadLister interface {
	List(ctx context.Context) ([]leads.Lead, error)
}

type Service struct {
	repo LeadLister
}

func NewService(repo LeadLister) *Service { return &Service{repo: repo} }

// LeadsSummary counts leads by status. Leads with an empty or unknown status
// count as pending, matching how intake tooling creates them.
func (s *Service) LeadsSummary(ctx context.Context, req LeadsSummaryRequest) (LeadsSummary, error) {
	rg := req.Range
	if !rg.IsZero() && (rg.From.IsZero() || rg.To.IsZero() || !rg.To.After(rg.From)) {
		return LeadsSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return LeadsSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return LeadsSummary{}, err
	}

	var out LeadsSummary
	if !rg.IsZero() {
		out.Range = &rg
	}
	for _, l := range rows {
		if !rg.IsZero() {
			if l.LastCalledAt == nil || l.LastCalledAt.Before(rg.From) || !l.LastCalledAt.Before(rg.To) {
				continue
			}
		}

		out.TotalLeads++
		switch l.Status {
		case leads.StatusContacted:
			out.Contacted++
		case leads.StatusBooked:
			out.Booked++
		case leads.StatusCallback:
			out.Callback++
		default:
			out.Pending++
		}

		if l.LastCalledAt != nil {
			out.Called++
		}
		if l.LastCallStatus != nil && calls.Status(*l.LastCallStatus).Unreached() {
			out.Unreached++
		}
		if l.DTMFInput != nil && *l.DTMFInput != "" {
			out.Responded++
		}
	}

	if out.Called > 0 {
		out.BookingRate = float64(out.Booked) / float64(out.Called)
		out.ResponseRate = float64(out.Responded) / float64(out.Called)
	}
	return out, nil
}
