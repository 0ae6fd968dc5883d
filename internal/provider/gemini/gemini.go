// Package gemini implements the provider contracts against the Gemini API.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/fablesmith/mythosforge/internal/provider"
)

var ErrNoAudio = errors.New("no audio data returned")

type Client struct {
	client *genai.Client
	cfg    *provider.Config
}

func New(ctx context.Context, cfg *provider.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{client: c, cfg: cfg}, nil
}

func (c *Client) StreamText(ctx context.Context, prompt string, onChunk func(text string)) (string, error) {
	var full strings.Builder
	for chunk, err := range c.client.Models.GenerateContentStream(ctx, c.cfg.ResolvedTextModel(), genai.Text(prompt), nil) {
		if err != nil {
			return full.String(), fmt.Errorf("text generation failed: %w", err)
		}
		text := chunk.Text()
		if text == "" {
			continue
		}
		full.WriteString(text)
		if onChunk != nil {
			onChunk(text)
		}
	}
	return full.String(), nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string, refImages []string) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	for _, ref := range refImages {
		data, mime, err := splitDataURI(ref)
		if err != nil {
			continue // skip unusable references rather than failing the request
		}
		parts = append(parts, genai.NewPartFromBytes(data, mime))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.ResolvedImageModel(), contents, config)
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mime,
					base64.StdEncoding.EncodeToString(part.InlineData.Data)), nil
			}
		}
	}
	return "", errors.New("no image data returned")
}

func (c *Client) Synthesize(ctx context.Context, text, voice string) (provider.SpeechResult, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.ResolvedTTSModel(), genai.Text(text), config)
	if err != nil {
		return provider.SpeechResult{}, fmt.Errorf("speech synthesis failed: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			result := provider.SpeechResult{
				Payload: base64.StdEncoding.EncodeToString(part.InlineData.Data),
			}
			// Gemini TTS returns raw L16 PCM; anything else is an
			// already-encoded container and passes through untouched.
			mime := strings.ToLower(part.InlineData.MIMEType)
			if mime != "" && !strings.Contains(mime, "l16") && !strings.Contains(mime, "pcm") {
				result.Compressed = true
				result.Extension = extensionForMIME(mime)
			}
			return result, nil
		}
	}
	return provider.SpeechResult{}, ErrNoAudio
}

func splitDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime == "" {
		mime = "image/png"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", err
	}
	return data, mime, nil
}

func extensionForMIME(mime string) string {
	switch {
	case strings.Contains(mime, "mpeg"), strings.Contains(mime, "mp3"):
		return "mp3"
	case strings.Contains(mime, "ogg"):
		return "ogg"
	case strings.Contains(mime, "wav"):
		return "wav"
	default:
		return "mp3"
	}
}
