package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Saver is the "persist bytes under a suggested name" port. The exporter
// stays pure and portable; the host decides where bytes actually land.
type Saver interface {
	Save(name string, data []byte) error
}

// DirSaver writes exported files into a directory.
type DirSaver struct {
	Dir string
}

func (d DirSaver) Save(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.Dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// Exporter turns TTS payloads into downloadable audio files. PCM payloads
// are WAV-wrapped; already-compressed provider payloads pass through
// unchanged with their native extension.
type Exporter struct {
	saver Saver
	now   func() time.Time
}

func NewExporter(saver Saver) *Exporter {
	return &Exporter{saver: saver, now: time.Now}
}

// SetNowFunc overrides the timestamp source. Test hook.
func (e *Exporter) SetNowFunc(fn func() time.Time) { e.now = fn }

// Export saves the payload and returns the filename it was saved under.
// compressedExt is the provider's native extension for compressed payloads;
// it is ignored for PCM payloads, which always become .wav.
func (e *Exporter) Export(payload, contextName, excerpt string, compressed bool, compressedExt string) (string, error) {
	var data []byte
	var ext string
	var err error

	if compressed {
		data, err = Decode(payload)
		ext = strings.TrimPrefix(compressedExt, ".")
		if ext == "" {
			ext = "mp3"
		}
	} else {
		data, err = DecodePCM(payload)
		if err == nil {
			data = WrapPCM(data, SampleRate)
		}
		ext = "wav"
	}
	if err != nil {
		return "", err
	}

	name := e.filename(contextName, excerpt, ext)
	if err := e.saver.Save(name, data); err != nil {
		return "", err
	}
	return name, nil
}

func (e *Exporter) filename(contextName, excerpt, ext string) string {
	safeName := sanitize(strings.TrimSpace(contextName))
	if safeName == "" {
		safeName = "Character"
	}

	cleaned := strings.NewReplacer(`"`, "", "'", "").Replace(excerpt)
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > 20 {
		cleaned = cleaned[:20]
	}
	safeText := sanitize(cleaned)
	if safeText == "" {
		safeText = e.now().Format("20060102-150405")
	}

	return fmt.Sprintf("%s_%s.%s", safeName, safeText, ext)
}

// sanitize replaces every non-alphanumeric rune with an underscore.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
