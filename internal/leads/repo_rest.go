package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
)

// RESTStore talks to a Supabase table through PostgREST.
//
//	select: GET   {base}/rest/v1/{table}?select=...&id=eq.{id}
//	update: PATCH {base}/rest/v1/{table}?id=eq.{id}
//
// Requests carry the service key as both apikey and bearer token.
type RESTStore struct {
	client  *postgrest.Client
	table   string
	timeout time.Duration
}

const (
	selectLeadContact = "id,phone,name,project"
	selectLeadFull    = "id,phone,name,project,status,last_call_status,dtmf_input,last_called_at"

	defaultRESTTimeout = 10 * time.Second
)

func NewRESTStore(baseURL, serviceKey, table string) (*RESTStore, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("leads: supabase url is required")
	}
	if serviceKey == "" {
		return nil, errors.New("leads: supabase service key is required")
	}
	if table == "" {
		return nil, errors.New("leads: table is required")
	}

	client := postgrest.NewClient(baseURL+"/rest/v1", "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("leads: supabase client: %w", client.ClientError)
	}
	return &RESTStore{client: client, table: table, timeout: defaultRESTTimeout}, nil
}

// restLead mirrors the JSON row shape; any column may come back null.
type restLead struct {
	ID             json.RawMessage `json:"id"`
	Phone          *string         `json:"phone"`
	Name           *string         `json:"name"`
	Project        *string         `json:"project"`
	Status         *string         `json:"status"`
	LastCallStatus *string         `json:"last_call_status"`
	DTMFInput      *string         `json:"dtmf_input"`
	LastCalledAt   *string         `json:"last_called_at"`
}

func (s *RESTStore) Get(ctx context.Context, id string) (Lead, error) {
	var rows []restLead
	err := s.run(ctx, func() error {
		_, err := s.client.From(s.table).
			Select(selectLeadContact, "", false).
			Eq("id", id).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return Lead{}, fmt.Errorf("leads: select %s: %w", id, err)
	}
	if len(rows) == 0 {
		return Lead{}, ErrNotFound
	}
	return rows[0].toLead(), nil
}

func (s *RESTStore) UpdateOutcome(ctx context.Context, id string, u OutcomeUpdate) error {
	u.LastCalledAt = u.LastCalledAt.UTC()
	err := s.run(ctx, func() error {
		_, _, err := s.client.From(s.table).
			Update(u, "minimal", "").
			Eq("id", id).
			Execute()
		return err
	})
	if err != nil {
		return fmt.Errorf("leads: update %s: %w", id, err)
	}
	return nil
}

func (s *RESTStore) List(ctx context.Context) ([]Lead, error) {
	var rows []restLead
	err := s.run(ctx, func() error {
		_, err := s.client.From(s.table).
			Select(selectLeadFull, "", false).
			Order("id", &postgrest.OrderOpts{Ascending: true}).
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	out := make([]Lead, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toLead())
	}
	return out, nil
}

// run bounds a PostgREST call by ctx and the store timeout. The client has no
// per-request context, so an abandoned call finishes in the background.
func (s *RESTStore) run(ctx context.Context, call func() error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r restLead) toLead() Lead {
	l := Lead{
		ID:             rawID(r.ID),
		Phone:          deref(r.Phone),
		Name:           deref(r.Name),
		Project:        deref(r.Project),
		Status:         Status(deref(r.Status)),
		LastCallStatus: r.LastCallStatus,
		DTMFInput:      r.DTMFInput,
	}
	if r.LastCalledAt != nil {
		if at, ok := parseTimestamp(*r.LastCalledAt); ok {
			l.LastCalledAt = &at
		}
	}
	return l
}

// rawID accepts both text and numeric primary keys.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999",
}

func parseTimestamp(v string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
