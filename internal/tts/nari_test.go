package tts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNariClient_ReturnsURL(t *testing.T) {
	var got nariRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer key")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_, _ = io.WriteString(w, `{"url":"https://cdn.example/a.mp3"}`)
	}))
	defer srv.Close()

	c := NewNariClient(srv.URL, "key", "hindi_female_v1", srv.Client())
	u, ok := c.AudioURL(context.Background(), "Namaskar")
	if !ok || u != "https://cdn.example/a.mp3" {
		t.Fatalf("unexpected result %q %v", u, ok)
	}
	if got.Text != "Namaskar" || got.Voice != "hindi_female_v1" {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestNariClient_DegradesOnFailure(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non-2xx": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota", http.StatusTooManyRequests)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `not json`)
		},
		"missing url": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"id":"job-1"}`)
		},
		"empty url": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"url":"  "}`)
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()

			c := NewNariClient(srv.URL, "key", "v", srv.Client())
			if u, ok := c.AudioURL(context.Background(), "x"); ok || u != "" {
				t.Fatalf("expected no audio, got %q %v", u, ok)
			}
		})
	}
}

func TestNariClient_DegradesWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewNariClient(url, "key", "v", nil)
	if _, ok := c.AudioURL(context.Background(), "x"); ok {
		t.Fatalf("expected no audio when provider unreachable")
	}
}

func TestDisabled_NeverReturnsAudio(t *testing.T) {
	if _, ok := (Disabled{}).AudioURL(context.Background(), "x"); ok {
		t.Fatalf("expected disabled synthesizer to report no audio")
	}
}
