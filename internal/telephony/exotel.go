package telephony

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lead-call-relay/internal/calls"
	"lead-call-relay/internal/relay"
)

type ExotelConfig struct {
	SID      string
	Token    string
	CallerID string
	APIHost  string
	CallType string
}

// ExotelProvider dials through the Exotel "connect" API.
//
//	POST https://{host}/v1/Accounts/{sid}/Calls/connect.json
//	form: From, To, CallerId, Url, CallType
//
// From and CallerId are both the configured virtual number; Url is fetched by
// Exotel once the callee answers.
type ExotelProvider struct {
	cfg    ExotelConfig
	client *http.Client
}

func NewExotelProvider(cfg ExotelConfig, client *http.Client) (*ExotelProvider, error) {
	if cfg.SID == "" || cfg.Token == "" {
		return nil, errors.New("telephony: exotel sid and token are required")
	}
	if cfg.CallerID == "" {
		return nil, errors.New("telephony: exotel caller id is required")
	}
	if cfg.APIHost == "" {
		cfg.APIHost = "api.exotel.com"
	}
	if cfg.CallType == "" {
		cfg.CallType = "transfers"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &ExotelProvider{cfg: cfg, client: client}, nil
}

func (p *ExotelProvider) Name() string { return "exotel" }

func (p *ExotelProvider) endpoint() string {
	host := strings.TrimRight(p.cfg.APIHost, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host + "/v1/Accounts/" + url.PathEscape(p.cfg.SID) + "/Calls/connect.json"
}

type exotelConnectResponse struct {
	Call struct {
		Sid    string `json:"Sid"`
		Status string `json:"Status"`
	} `json:"Call"`
}

func (p *ExotelProvider) PlaceCall(ctx context.Context, req relay.DialRequest) (relay.DialResult, error) {
	if strings.TrimSpace(req.To) == "" {
		return relay.DialResult{}, errors.New("telephony: destination number required")
	}
	if strings.TrimSpace(req.CallbackURL) == "" {
		return relay.DialResult{}, errors.New("telephony: callback url required")
	}

	form := url.Values{}
	form.Set("From", p.cfg.CallerID)
	form.Set("To", req.To)
	form.Set("CallerId", p.cfg.CallerID)
	form.Set("Url", req.CallbackURL)
	form.Set("CallType", p.cfg.CallType)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return relay.DialResult{}, err
	}
	httpReq.SetBasicAuth(p.cfg.SID, p.cfg.Token)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return relay.DialResult{}, fmt.Errorf("telephony: exotel connect: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return relay.DialResult{}, fmt.Errorf("%w: exotel status %d: %s", ErrProviderRejected, resp.StatusCode, strings.TrimSpace(truncate(string(body), 512)))
	}

	// The call is already queued at this point; an unreadable body only loses the sid.
	out := relay.DialResult{Status: calls.StatusQueued}
	var parsed exotelConnectResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		out.ProviderCallID = parsed.Call.Sid
		if parsed.Call.Status != "" {
			out.Status = calls.Status(parsed.Call.Status)
		}
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
