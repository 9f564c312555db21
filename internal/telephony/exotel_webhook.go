package telephony

import (
	"errors"
	"net/http"
	"strings"
)

const maxOutcomeFormMemory = 32 << 20

// OutcomeForm holds the fields Exotel posts to the Gather action URL.
// Both are optional and stored verbatim; nil means the field was not sent.
type OutcomeForm struct {
	Digits     *string
	CallStatus *string
	CallSid    string
}

// ParseOutcomeForm reads urlencoded or multipart body fields, falling back to
// the query string for providers that send GET-style callbacks.
func ParseOutcomeForm(r *http.Request) (OutcomeForm, error) {
	if err := r.ParseMultipartForm(maxOutcomeFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return OutcomeForm{}, err
	}
	return OutcomeForm{
		Digits:     formValue(r, "Digits"),
		CallStatus: formValue(r, "CallStatus"),
		CallSid:    strings.TrimSpace(r.Form.Get("CallSid")),
	}, nil
}

func formValue(r *http.Request, key string) *string {
	vs, ok := r.Form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	v := vs[0]
	return &v
}
