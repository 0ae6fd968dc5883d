// Package models holds the domain primitives shared across the authoring
// core: the active mode, global style settings, story data, transcript
// messages and saved registry elements. Every type that is persisted inside
// a session snapshot lives here together with its defaulting normalizer, so
// that older or partial snapshots are repaired in one place on load.
package models

import (
	"regexp"
	"strings"
)

// Mode identifies which authoring surface is active. The string values are
// part of the persisted snapshot format.
type Mode string

const (
	ModeGlobals     Mode = "Globals"
	ModeCharacter   Mode = "Character"
	ModeEnvironment Mode = "Environment"
	ModeProp        Mode = "Prop"
	ModeStory       Mode = "Story"
)

// ValidModes returns all authoring modes in display order.
func ValidModes() []Mode {
	return []Mode{ModeGlobals, ModeCharacter, ModeEnvironment, ModeProp, ModeStory}
}

// IsValid reports whether m is one of the known modes.
func (m Mode) IsValid() bool {
	switch m {
	case ModeGlobals, ModeCharacter, ModeEnvironment, ModeProp, ModeStory:
		return true
	}
	return false
}

// Normalized maps unknown or empty modes back to the Globals surface.
func (m Mode) Normalized() Mode {
	if !m.IsValid() {
		return ModeGlobals
	}
	return m
}

// Role tags a transcript message.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one entry of the conversation transcript. Image and AudioData
// carry base64 payloads returned by the generation endpoints.
type Message struct {
	Role         string `json:"role"`
	Text         string `json:"text"`
	Image        string `json:"image,omitempty"`
	AudioData    string `json:"audioData,omitempty"`
	Status       string `json:"status,omitempty"`
	IsReference  bool   `json:"isReference,omitempty"`
	IsStoryboard bool   `json:"isStoryboard,omitempty"`
}

// GlobalData holds the project-wide style settings applied to every
// generation request.
type GlobalData struct {
	Style                string   `json:"style"`
	TimePeriod           string   `json:"timePeriod"`
	Genre                string   `json:"genre"`
	LightingTheme        string   `json:"lightingTheme"`
	ColorPalette         string   `json:"colorPalette"`
	AspectRatio          string   `json:"aspectRatio"`
	ImageQuality         string   `json:"imageQuality"`
	StyleReferenceImages []string `json:"styleReferenceImages"`
}

// DefaultGlobalData returns the empty template with every field present.
func DefaultGlobalData() GlobalData {
	return GlobalData{
		AspectRatio:          "1:1",
		ImageQuality:         "1K",
		StyleReferenceImages: []string{},
	}
}

// Normalized repairs a GlobalData loaded from an older snapshot: selector
// fields fall back to their defaults and the reference image slice is never
// nil.
func (g GlobalData) Normalized() GlobalData {
	if g.AspectRatio == "" {
		g.AspectRatio = "1:1"
	}
	if g.ImageQuality == "" {
		g.ImageQuality = "1K"
	}
	if g.StyleReferenceImages == nil {
		g.StyleReferenceImages = []string{}
	}
	return g
}

// StoryData is the story authoring state: a synopsis, the generated full
// story, and the scene-by-scene breakdown used for storyboarding.
type StoryData struct {
	Synopsis    string   `json:"synopsis"`
	FullStory   string   `json:"fullStory"`
	StoryScenes []string `json:"storyScenes"`
}

// DefaultStoryData returns the empty story template.
func DefaultStoryData() StoryData {
	return StoryData{StoryScenes: []string{}}
}

// Normalized guarantees a non-nil scene slice on snapshots saved before the
// breakdown feature existed.
func (s StoryData) Normalized() StoryData {
	if s.StoryScenes == nil {
		s.StoryScenes = []string{}
	}
	return s
}

var sceneSplit = regexp.MustCompile(`\n\n+`)

// BreakDown chops the full story into scene segments on blank-line
// boundaries, dropping empty segments. A story without a full text keeps its
// existing scenes.
func (s StoryData) BreakDown() StoryData {
	if s.FullStory == "" {
		return s
	}
	segments := []string{}
	for _, seg := range sceneSplit.Split(s.FullStory, -1) {
		if strings.TrimSpace(seg) != "" {
			segments = append(segments, seg)
		}
	}
	s.StoryScenes = segments
	return s
}

// UpdateScene replaces the scene text at index i, ignoring out-of-range
// indices.
func (s StoryData) UpdateScene(i int, text string) StoryData {
	if i < 0 || i >= len(s.StoryScenes) {
		return s
	}
	scenes := make([]string, len(s.StoryScenes))
	copy(scenes, s.StoryScenes)
	scenes[i] = text
	s.StoryScenes = scenes
	return s
}

// SavedElement is one promoted generation artifact in the registry. Type
// records which library surface it came from.
type SavedElement struct {
	ID          string `json:"id"`
	Type        Mode   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// NormalizeMessages guarantees a non-nil transcript.
func NormalizeMessages(msgs []Message) []Message {
	if msgs == nil {
		return []Message{}
	}
	return msgs
}

// NormalizeElements guarantees a non-nil registry slice.
func NormalizeElements(els []SavedElement) []SavedElement {
	if els == nil {
		return []SavedElement{}
	}
	return els
}
