// Package audio bridges the wire representation of synthesized speech
// (base64 text payloads) and the two consumer needs: immediate playback and
// file export. The TTS endpoint returns raw 16-bit signed little-endian PCM,
// mono, at 24kHz; export wraps it in a canonical WAV container so standard
// audio tooling can open it.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrDecode reports a malformed base64 or PCM payload.
var ErrDecode = errors.New("malformed audio payload")

const (
	// SampleRate is the fixed output rate of the TTS endpoint.
	SampleRate = 24000

	channels  = 1
	bitDepth  = 16
	headerLen = 44
)

// Decode converts a base64 payload into raw bytes. A data-URI prefix
// ("data:audio/...;base64,") is tolerated and stripped.
func Decode(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ";base64,"); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return data, nil
}

// DecodePCM decodes a payload that must contain 16-bit PCM samples. An odd
// byte length cannot hold whole samples and is rejected rather than
// silently truncated.
func DecodePCM(payload string) ([]byte, error) {
	data, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd PCM byte length %d", ErrDecode, len(data))
	}
	return data, nil
}

// WrapPCM prepends the canonical 44-byte RIFF/WAVE header for single-channel
// 16-bit PCM at the given sample rate. An empty payload yields a valid
// container with a zero data length.
func WrapPCM(pcm []byte, sampleRate int) []byte {
	blockAlign := channels * bitDepth / 8
	byteRate := sampleRate * blockAlign

	out := make([]byte, headerLen+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM format tag
	binary.LittleEndian.PutUint16(out[22:24], channels)
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], bitDepth)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[headerLen:], pcm)
	return out
}

// Samples converts little-endian 16-bit PCM bytes into float32 samples
// normalized to [-1, 1). The byte length must be even.
func Samples(pcm []byte) []float32 {
	out := make([]float32, len(pcm)/2)
	for i := range out {
		s := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		out[i] = float32(s) / 32768.0
	}
	return out
}
