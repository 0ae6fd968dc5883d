package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{1, 2, 3, 4})

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 4 || got[0] != 1 {
		t.Errorf("Decode() = %v, want [1 2 3 4]", got)
	}
}

func TestDecode_DataURIPrefix(t *testing.T) {
	payload := "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString([]byte{9, 9})

	got, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Decode() len = %d, want 2", len(got))
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("not!!valid base64")
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Decode() error = %v, want ErrDecode", err)
	}
}

func TestDecodePCM_OddLength(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0, 0, 0})

	_, err := DecodePCM(payload)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("DecodePCM() odd length error = %v, want ErrDecode", err)
	}
}

func TestWrapPCM_Header(t *testing.T) {
	pcm := make([]byte, 200) // 100 silent samples

	got := WrapPCM(pcm, SampleRate)

	if len(got) != 244 {
		t.Fatalf("WrapPCM() len = %d, want 244", len(got))
	}
	if string(got[0:4]) != "RIFF" {
		t.Errorf("bytes 0-3 = %q, want RIFF", got[0:4])
	}
	if string(got[8:12]) != "WAVE" {
		t.Errorf("bytes 8-11 = %q, want WAVE", got[8:12])
	}
	if string(got[12:16]) != "fmt " {
		t.Errorf("bytes 12-15 = %q, want \"fmt \"", got[12:16])
	}
	if string(got[36:40]) != "data" {
		t.Errorf("bytes 36-39 = %q, want data", got[36:40])
	}
	if n := binary.LittleEndian.Uint32(got[40:44]); n != 200 {
		t.Errorf("data length field = %d, want 200", n)
	}
	if n := binary.LittleEndian.Uint32(got[4:8]); n != 236 {
		t.Errorf("chunk size field = %d, want 236", n)
	}
}

func TestWrapPCM_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		dataLen    int
	}{
		{"tts rate", 24000, 480},
		{"cd rate", 44100, 2},
		{"empty payload", 24000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapPCM(make([]byte, tt.dataLen), tt.sampleRate)

			if len(got) != 44+tt.dataLen {
				t.Errorf("len = %d, want %d", len(got), 44+tt.dataLen)
			}
			if r := binary.LittleEndian.Uint32(got[24:28]); int(r) != tt.sampleRate {
				t.Errorf("sample rate field = %d, want %d", r, tt.sampleRate)
			}
			if n := binary.LittleEndian.Uint32(got[40:44]); int(n) != tt.dataLen {
				t.Errorf("data length field = %d, want %d", n, tt.dataLen)
			}
			// byte rate = rate * blockAlign, blockAlign = 2 for mono 16-bit
			if br := binary.LittleEndian.Uint32(got[28:32]); int(br) != tt.sampleRate*2 {
				t.Errorf("byte rate field = %d, want %d", br, tt.sampleRate*2)
			}
			if ba := binary.LittleEndian.Uint16(got[32:34]); ba != 2 {
				t.Errorf("block align field = %d, want 2", ba)
			}
			if ch := binary.LittleEndian.Uint16(got[22:24]); ch != 1 {
				t.Errorf("channel count field = %d, want 1", ch)
			}
			if bd := binary.LittleEndian.Uint16(got[34:36]); bd != 16 {
				t.Errorf("bit depth field = %d, want 16", bd)
			}
		})
	}
}

func TestSamples(t *testing.T) {
	pcm := make([]byte, 6)
	minSample := int16(-32768)
	binary.LittleEndian.PutUint16(pcm[0:2], uint16(minSample))
	binary.LittleEndian.PutUint16(pcm[2:4], 0)
	binary.LittleEndian.PutUint16(pcm[4:6], 16384)

	got := Samples(pcm)

	if len(got) != 3 {
		t.Fatalf("Samples() len = %d, want 3", len(got))
	}
	if got[0] != -1.0 {
		t.Errorf("sample 0 = %v, want -1.0", got[0])
	}
	if got[1] != 0 {
		t.Errorf("sample 1 = %v, want 0", got[1])
	}
	if got[2] != 0.5 {
		t.Errorf("sample 2 = %v, want 0.5", got[2])
	}
}

type recordingSink struct {
	samples []float32
	rate    int
	err     error
}

func (r *recordingSink) Play(samples []float32, rate int) error {
	r.samples = samples
	r.rate = rate
	return r.err
}

func TestPlayer_Play(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, nil)

	pcm := make([]byte, 4)
	binary.LittleEndian.PutUint16(pcm[2:4], 16384)
	p.Play(base64.StdEncoding.EncodeToString(pcm))

	if sink.rate != SampleRate {
		t.Errorf("sink rate = %d, want %d", sink.rate, SampleRate)
	}
	if len(sink.samples) != 2 || sink.samples[1] != 0.5 {
		t.Errorf("sink samples = %v, want [0 0.5]", sink.samples)
	}
}

func TestPlayer_PlayBadPayloadDoesNotPanic(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, nil)

	p.Play("%%%not base64%%%")

	if sink.samples != nil {
		t.Error("sink received samples from a broken payload")
	}
}

func TestPlayer_SinkErrorSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("device gone")}
	p := NewPlayer(sink, nil)

	p.Play(base64.StdEncoding.EncodeToString(make([]byte, 2)))
}

type memSaver struct {
	name string
	data []byte
}

func (m *memSaver) Save(name string, data []byte) error {
	m.name = name
	m.data = data
	return nil
}

func TestExporter_ExportPCM(t *testing.T) {
	saver := &memSaver{}
	e := NewExporter(saver)

	payload := base64.StdEncoding.EncodeToString(make([]byte, 200))
	name, err := e.Export(payload, "Kaelen Voss", `"Hail, traveler!" said the knight`, false, "")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if name != "Kaelen_Voss_Hail__traveler__said.wav" {
		t.Errorf("Export() name = %q", name)
	}
	if len(saver.data) != 244 {
		t.Errorf("saved data len = %d, want 244 (wrapped)", len(saver.data))
	}
	if string(saver.data[0:4]) != "RIFF" {
		t.Error("saved data is not WAV-wrapped")
	}
}

func TestExporter_ExportCompressedPassthrough(t *testing.T) {
	saver := &memSaver{}
	e := NewExporter(saver)

	raw := []byte{0xff, 0xfb, 0x90, 0x00, 0x01} // odd length, fine for compressed
	payload := base64.StdEncoding.EncodeToString(raw)

	name, err := e.Export(payload, "Narrator", "intro", true, "mp3")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if !strings.HasSuffix(name, ".mp3") {
		t.Errorf("Export() name = %q, want .mp3 suffix", name)
	}
	if len(saver.data) != len(raw) {
		t.Errorf("saved data len = %d, want %d (passthrough)", len(saver.data), len(raw))
	}
}

func TestExporter_EmptyExcerptUsesTimestamp(t *testing.T) {
	saver := &memSaver{}
	e := NewExporter(saver)
	e.SetNowFunc(func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	})

	payload := base64.StdEncoding.EncodeToString(make([]byte, 2))
	name, err := e.Export(payload, "Echo-7", "", false, "")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if name != "Echo_7_20260314-092653.wav" {
		t.Errorf("Export() name = %q", name)
	}
}

func TestExporter_OddPCMRejected(t *testing.T) {
	saver := &memSaver{}
	e := NewExporter(saver)

	payload := base64.StdEncoding.EncodeToString(make([]byte, 3))
	if _, err := e.Export(payload, "x", "y", false, ""); !errors.Is(err, ErrDecode) {
		t.Errorf("Export() odd PCM error = %v, want ErrDecode", err)
	}
}
