package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lead-call-relay/pkg/logger"
)

// NariClient requests synthesized audio from Nari Labs.
//
// Request:  POST {baseURL} {"text": ..., "voice": ...} with a bearer API key.
// Response: JSON object whose "url" field points at the rendered audio.
type NariClient struct {
	baseURL string
	apiKey  string
	voice   string
	client  *http.Client
}

var errNoAudioURL = errors.New("tts: response has no url")

func NewNariClient(baseURL, apiKey, voice string, client *http.Client) *NariClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &NariClient{baseURL: baseURL, apiKey: apiKey, voice: voice, client: client}
}

func (c *NariClient) AudioURL(ctx context.Context, text string) (string, bool) {
	u, err := c.synthesize(ctx, text)
	if err != nil {
		logger.From(ctx).Warn("tts unavailable, falling back to spoken text", "provider", "nari", "voice", c.voice, "err", err)
		return "", false
	}
	return u, true
}

type nariRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

type nariResponse struct {
	URL string `json:"url"`
}

func (c *NariClient) synthesize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(nariRequest{Text: text, Voice: c.voice})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tts: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out nariResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("tts: decode response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", errNoAudioURL
	}
	return out.URL, nil
}
