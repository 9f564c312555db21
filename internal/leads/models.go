package leads

import "time"

// Lead is a row in the external lead store.
//
// The relay never creates or deletes leads. Status and the last_* fields are
// written only by the outcome webhook; everything else is owned by intake tooling.
type Lead struct {
	ID      string `json:"id" db:"id"`
	Phone   string `json:"phone" db:"phone"`
	Name    string `json:"name" db:"name"`
	Project string `json:"project" db:"project"`

	Status Status `json:"status,omitempty" db:"status"`

	// LastCallStatus and DTMFInput are stored verbatim as the provider sent them.
	LastCallStatus *string    `json:"last_call_status,omitempty" db:"last_call_status"`
	DTMFInput      *string    `json:"dtmf_input,omitempty" db:"dtmf_input"`
	LastCalledAt   *time.Time `json:"last_called_at,omitempty" db:"last_called_at"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusBooked    Status = "booked"
	StatusCallback  Status = "callback"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusBooked, StatusCallback:
		return true
	default:
		return false
	}
}

// OutcomeUpdate is the full set of fields overwritten on every outcome webhook.
// Nil pointers are written as null.
type OutcomeUpdate struct {
	Status         Status    `json:"status"`
	LastCallStatus *string   `json:"last_call_status"`
	DTMFInput      *string   `json:"dtmf_input"`
	LastCalledAt   time.Time `json:"last_called_at"`
}
