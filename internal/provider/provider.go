// Package provider defines the contracts for the remote generation
// endpoints: streamed text, image synthesis, and speech synthesis. The core
// treats the backend as opaque; implementations live in subpackages.
package provider

import "context"

// Default models used when the config leaves them unset.
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "gemini-2.5-flash-image-preview"
	DefaultTTSModel   = "gemini-2.5-flash-preview-tts"
)

// Config carries the provider credentials and model selection.
type Config struct {
	APIKey     string
	TextModel  string
	ImageModel string
	TTSModel   string
}

func (c *Config) ResolvedTextModel() string {
	if c.TextModel == "" {
		return DefaultTextModel
	}
	return c.TextModel
}

func (c *Config) ResolvedImageModel() string {
	if c.ImageModel == "" {
		return DefaultImageModel
	}
	return c.ImageModel
}

func (c *Config) ResolvedTTSModel() string {
	if c.TTSModel == "" {
		return DefaultTTSModel
	}
	return c.TTSModel
}

// SpeechResult is a synthesized audio payload. Compressed payloads carry
// the provider's native container and must not be WAV-wrapped; raw PCM
// payloads are 16-bit mono at 24kHz.
type SpeechResult struct {
	Payload    string // base64 audio bytes
	Compressed bool
	Extension  string // native extension for compressed payloads, e.g. "mp3"
}

// Provider is the full generation surface the authoring core consumes.
type Provider interface {
	// StreamText generates text for the prompt, invoking onChunk for every
	// streamed fragment, and returns the accumulated text.
	StreamText(ctx context.Context, prompt string, onChunk func(text string)) (string, error)

	// GenerateImage produces an image for the prompt, optionally grounded
	// on reference images given as base64 data URIs. Returns a data URI.
	GenerateImage(ctx context.Context, prompt string, refImages []string) (string, error)

	// Synthesize speaks the text with the given prebuilt voice.
	Synthesize(ctx context.Context, text, voice string) (SpeechResult, error)
}
