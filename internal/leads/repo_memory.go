package leads

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process lead store for tests and LEAD_STORE=memory local runs.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	leads map[string]Lead
}

func NewMemoryRepo(seed ...Lead) *MemoryRepo {
	r := &MemoryRepo{leads: make(map[string]Lead, len(seed))}
	for _, l := range seed {
		r.leads[l.ID] = cloneLead(l)
	}
	return r
}

// Put inserts or replaces a lead.
func (r *MemoryRepo) Put(l Lead) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads[l.ID] = cloneLead(l)
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return cloneLead(l), nil
}

// UpdateOutcome overwrites the outcome fields. Unknown ids are a no-op,
// matching an UPDATE ... WHERE id = ? that touches zero rows.
func (r *MemoryRepo) UpdateOutcome(ctx context.Context, id string, u OutcomeUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil
	}
	at := u.LastCalledAt
	l.Status = u.Status
	l.LastCallStatus = cloneString(u.LastCallStatus)
	l.DTMFInput = cloneString(u.DTMFInput)
	l.LastCalledAt = &at
	r.leads[id] = l
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Lead, 0, len(r.leads))
	for _, l := range r.leads {
		out = append(out, cloneLead(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneLead(l Lead) Lead {
	l.LastCallStatus = cloneString(l.LastCallStatus)
	l.DTMFInput = cloneString(l.DTMFInput)
	if l.LastCalledAt != nil {
		at := *l.LastCalledAt
		l.LastCalledAt = &at
	}
	return l
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
