package leads

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepo_GetNotFound(t *testing.T) {
	r := NewMemoryRepo()
	if _, err := r.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepo_SecondOutcomeOverwritesFirst(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo(Lead{ID: "L1", Phone: "+911234567890", Name: "Rahul", Project: "Skyline", Status: StatusPending})

	first := time.Unix(1700000000, 0).UTC()
	second := first.Add(time.Minute)

	if err := r.UpdateOutcome(ctx, "L1", OutcomeUpdate{Status: StatusBooked, LastCallStatus: strp("completed"), DTMFInput: strp("1"), LastCalledAt: first}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := r.UpdateOutcome(ctx, "L1", OutcomeUpdate{Status: StatusPending, LastCallStatus: strp("no-answer"), LastCalledAt: second}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	l, err := r.Get(ctx, "L1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if l.Status != StatusPending {
		t.Fatalf("expected pending, got %q", l.Status)
	}
	if l.DTMFInput != nil {
		t.Fatalf("expected dtmf cleared by second update, got %q", *l.DTMFInput)
	}
	if l.LastCallStatus == nil || *l.LastCallStatus != "no-answer" {
		t.Fatalf("unexpected last_call_status: %v", l.LastCallStatus)
	}
	if l.LastCalledAt == nil || !l.LastCalledAt.Equal(second) {
		t.Fatalf("unexpected last_called_at: %v", l.LastCalledAt)
	}
	if l.Name != "Rahul" || l.Phone != "+911234567890" {
		t.Fatalf("expected contact fields untouched: %+v", l)
	}
}

func TestMemoryRepo_UpdateUnknownIsNoop(t *testing.T) {
	r := NewMemoryRepo()
	if err := r.UpdateOutcome(context.Background(), "ghost", OutcomeUpdate{Status: StatusContacted}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	all, _ := r.List(context.Background())
	if len(all) != 0 {
		t.Fatalf("expected no leads created, got %d", len(all))
	}
}

func TestMemoryRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	r.Put(Lead{ID: "L1", DTMFInput: strp("1")})

	l, _ := r.Get(ctx, "L1")
	*l.DTMFInput = "2"

	again, _ := r.Get(ctx, "L1")
	if *again.DTMFInput != "1" {
		t.Fatalf("expected stored lead unaffected by caller mutation")
	}
}

func TestMemoryRepo_ListSortedByID(t *testing.T) {
	r := NewMemoryRepo(Lead{ID: "b"}, Lead{ID: "a"}, Lead{ID: "c"})
	all, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", all)
	}
}
