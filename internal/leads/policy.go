package leads

import "lead-call-relay/internal/calls"

// StatusFor maps a keypress / call-status pair to a lead status.
//
// First match wins:
//  1. Digits "1" -> booked
//  2. Digits "2" -> callback
//  3. CallStatus no-answer, busy or failed -> pending
//  4. anything else -> contacted
//
// A keypress always beats a failing call status.
func StatusFor(digits, callStatus *string) Status {
	if digits != nil {
		switch *digits {
		case "1":
			return StatusBooked
		case "2":
			return StatusCallback
		}
	}
	if callStatus != nil && calls.Status(*callStatus).Unreached() {
		return StatusPending
	}
	return StatusContacted
}
