package audio

import "log/slog"

// Sink is the audio output port. Implementations receive normalized float32
// samples at the given rate.
type Sink interface {
	Play(samples []float32, sampleRate int) error
}

// NopSink discards audio. Used when no output device is wired up.
type NopSink struct{}

func (NopSink) Play([]float32, int) error { return nil }

// Player decodes TTS payloads and emits them to a sink. Playback failure is
// never fatal: a broken payload degrades to silence.
type Player struct {
	sink Sink
	log  *slog.Logger
}

func NewPlayer(sink Sink, log *slog.Logger) *Player {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Player{sink: sink, log: log}
}

// Play decodes a base64 PCM payload and plays it at the fixed TTS rate.
// Errors are logged and swallowed.
func (p *Player) Play(payload string) {
	pcm, err := DecodePCM(payload)
	if err != nil {
		p.log.Warn("audio playback skipped", "err", err)
		return
	}
	if err := p.sink.Play(Samples(pcm), SampleRate); err != nil {
		p.log.Warn("audio playback failed", "err", err)
	}
}
