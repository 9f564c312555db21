package tts

import "context"

// Synthesizer turns prompt text into a playable audio URL.
//
// Failure is not an error: ok=false means "no audio", and the caller falls
// back to the provider's own text-to-speech. Implementations make a single
// attempt and never retry.
type Synthesizer interface {
	AudioURL(ctx context.Context, text string) (url string, ok bool)
}

// Disabled is used when no TTS provider is configured.
type Disabled struct{}

func (Disabled) AudioURL(ctx context.Context, text string) (string, bool) { return "", false }
