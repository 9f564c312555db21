package leads

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Seed loads a JSON array of leads into the repo. A missing status defaults
// to pending. Any lead without id or phone, or with an unknown status,
// rejects the whole batch and nothing is stored.
func (r *MemoryRepo) Seed(rd io.Reader) (int, error) {
	var in []Lead
	if err := json.NewDecoder(rd).Decode(&in); err != nil {
		return 0, fmt.Errorf("leads: decode seed: %w", err)
	}

	for i := range in {
		l := &in[i]
		if strings.TrimSpace(l.ID) == "" || strings.TrimSpace(l.Phone) == "" {
			return 0, fmt.Errorf("%w: seed entry %d needs id and phone", ErrInvalidLead, i)
		}
		if l.Status == "" {
			l.Status = StatusPending
		}
		if !l.Status.Valid() {
			return 0, fmt.Errorf("%w: seed entry %d has status %q", ErrInvalidLead, i, l.Status)
		}
	}

	for _, l := range in {
		r.Put(l)
	}
	return len(in), nil
}
