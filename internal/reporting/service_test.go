package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"lead-call-relay/internal/leads"
)

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

type failingLister struct{}

func (failingLister) List(ctx context.Context) ([]leads.Lead, error) {
	return nil, errors.New("store down")
}

func seededRepo(now time.Time) *leads.MemoryRepo {
	return leads.NewMemoryRepo(
		leads.Lead{ID: "1", Phone: "+911", Status: leads.StatusBooked, DTMFInput: strp("1"), LastCallStatus: strp("completed"), LastCalledAt: timep(now)},
		leads.Lead{ID: "2", Phone: "+912", Status: leads.StatusCallback, DTMFInput: strp("2"), LastCallStatus: strp("completed"), LastCalledAt: timep(now)},
		leads.Lead{ID: "3", Phone: "+913", Status: leads.StatusPending, LastCallStatus: strp("no-answer"), LastCalledAt: timep(now.Add(-48 * time.Hour))},
		leads.Lead{ID: "4", Phone: "+914", Status: leads.StatusContacted, DTMFInput: strp("9"), LastCallStatus: strp("completed"), LastCalledAt: timep(now)},
		leads.Lead{ID: "5", Phone: "+915"},
	)
}

func TestLeadsSummary_CountsByStatus(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	svc := NewService(seededRepo(now))

	out, err := svc.LeadsSummary(context.Background(), LeadsSummaryRequest{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalLeads != 5 || out.Booked != 1 || out.Callback != 1 || out.Contacted != 1 || out.Pending != 2 {
		t.Fatalf("unexpected counts: %+v", out)
	}
	if out.Called != 4 || out.Unreached != 1 || out.Responded != 3 {
		t.Fatalf("unexpected call counts: %+v", out)
	}
	if out.BookingRate != 0.25 || out.ResponseRate != 0.75 {
		t.Fatalf("unexpected rates: %+v", out)
	}
	if out.Range != nil {
		t.Fatalf("expected no range echoed")
	}
}

func TestLeadsSummary_FiltersByRange(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	svc := NewService(seededRepo(now))

	out, err := svc.LeadsSummary(context.Background(), LeadsSummaryRequest{Range: TimeRange{From: now.Add(-time.Hour), To: now.Add(time.Hour)}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalLeads != 3 || out.Unreached != 0 {
		t.Fatalf("expected only leads called within range: %+v", out)
	}
}

func TestLeadsSummary_RejectsBadRange(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	svc := NewService(seededRepo(now))

	_, err := svc.LeadsSummary(context.Background(), LeadsSummaryRequest{Range: TimeRange{From: now, To: now.Add(-time.Hour)}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	_, err = svc.LeadsSummary(context.Background(), LeadsSummaryRequest{Range: TimeRange{From: now}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for half-open range, got %v", err)
	}
}

func TestLeadsSummary_EmptyStoreHasZeroRates(t *testing.T) {
	out, err := NewService(leads.NewMemoryRepo()).LeadsSummary(context.Background(), LeadsSummaryRequest{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalLeads != 0 || out.BookingRate != 0 {
		t.Fatalf("unexpected summary: %+v", out)
	}
}

func TestLeadsSummary_SurfacesStoreError(t *testing.T) {
	if _, err := NewService(failingLister{}).LeadsSummary(context.Background(), LeadsSummaryRequest{}); err == nil {
		t.Fatalf("expected error")
	}
}
