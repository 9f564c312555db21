package reporting

import "time"

// TimeRange filters on last_called_at. A zero range means "all leads".
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r TimeRange) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

type LeadsSummaryRequest struct {
	Range TimeRange `json:"range"`
}

// LeadsSummary aggregates lead outcomes for the operator dashboard.
type LeadsSummary struct {
	Range *TimeRange `json:"range,omitempty"`

	TotalLeads int `json:"total_leads"`
	Pending    int `json:"pending"`
	Contacted  int `json:"contacted"`
	Booked     int `json:"booked"`
	Callback   int `json:"callback"`

	// Called counts leads with at least one recorded outcome.
	Called int `json:"called"`
	// Unreached counts leads whose last call was no-answer, busy or failed.
	Unreached int `json:"unreached"`
	// Responded counts leads whose last call captured a keypress.
	Responded int `json:"responded"`

	// BookingRate = Booked / Called.
	BookingRate float64 `json:"booking_rate"`
	// ResponseRate = Responded / Called.
	ResponseRate float64 `json:"response_rate"`
}
