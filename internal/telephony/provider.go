package telephony

import (
	"context"
	"errors"

	"lead-call-relay/internal/relay"
)

// Provider is the outbound-call capability of a telephony vendor.
//
// Rules:
// - No vendor-specific types outside this package.
// - One attempt per call; the caller decides what a failure means.
type Provider interface {
	Name() string
	PlaceCall(ctx context.Context, req relay.DialRequest) (relay.DialResult, error)
}

// ErrProviderRejected wraps non-2xx responses from the vendor API.
var ErrProviderRejected = errors.New("telephony: provider rejected request")

var _ Provider = (*ExotelProvider)(nil)
