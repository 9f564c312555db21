package calls

// Status is a call status string as reported by the telephony provider.
//
// Values are stored verbatim on the lead record, so they use the provider's
// spelling (hyphenated) rather than an internal one.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusRinging    Status = "ringing"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusBusy       Status = "busy"
	StatusFailed     Status = "failed"
	StatusNoAnswer   Status = "no-answer"
	StatusCanceled   Status = "canceled"
)

// Unreached reports whether the callee was never reached: no-answer, busy or failed.
func (s Status) Unreached() bool {
	switch s {
	case StatusNoAnswer, StatusBusy, StatusFailed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the provider will send no further updates for the call.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusBusy, StatusFailed, StatusNoAnswer, StatusCanceled:
		return true
	default:
		return false
	}
}
