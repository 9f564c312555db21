package leads

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("lead not found")
	ErrInvalidLead = errors.New("invalid lead")
)

// Store is the lead store capability: select and update, both scoped by id.
//
// There are no transactions or version checks. Concurrent updates to the
// same lead are last-write-wins at the store.
type Store interface {
	// Get returns ErrNotFound when no lead has this id.
	Get(ctx context.Context, id string) (Lead, error)
	UpdateOutcome(ctx context.Context, id string, u OutcomeUpdate) error
	List(ctx context.Context) ([]Lead, error)
}
