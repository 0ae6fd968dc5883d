// Package session persists whole-state snapshots of the authoring
// workspace. A snapshot is a complete, named, timestamped copy of all live
// state; the store keeps one JSON list of snapshots per owning identity so
// signed-in users and guests never see each other's sessions.
package session

import (
	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/pkg/models"
)

// DefaultSessionName is the placeholder before the user names the session.
const DefaultSessionName = "Untitled Session"

// Snapshot is one saved session. Name is a soft dedup key: saving under an
// existing name overwrites that snapshot in place (last write wins). ID is
// minted at snapshot creation and never reused.
type Snapshot struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	LastModified int64        `json:"lastModified"` // epoch milliseconds
	Data         SnapshotData `json:"data"`
}

// SnapshotData bundles every piece of live authoring state.
type SnapshotData struct {
	Mode          models.Mode           `json:"mode"`
	GlobalData    models.GlobalData     `json:"globalData"`
	CharData      asset.Character       `json:"charData"`
	EnvData       asset.Environment     `json:"envData"`
	PropData      asset.Prop            `json:"propData"`
	CharLibrary   []asset.Character     `json:"charLibrary"`
	EnvLibrary    []asset.Environment   `json:"envLibrary"`
	PropLibrary   []asset.Prop          `json:"propLibrary"`
	StoryData     models.StoryData      `json:"storyData"`
	SavedElements []models.SavedElement `json:"savedElements"`
	ChatMessages  []models.Message      `json:"chatMessages"`
}

// Normalized repairs a snapshot written by an older revision: missing
// sub-objects become their default templates and missing collections become
// empty, so loading never trips over absent keys.
func (d SnapshotData) Normalized() SnapshotData {
	d.Mode = d.Mode.Normalized()
	d.GlobalData = d.GlobalData.Normalized()
	d.StoryData = d.StoryData.Normalized()
	if d.CharData.VoiceProfile == "" {
		d.CharData.VoiceProfile = asset.DefaultCharacter().VoiceProfile
	}
	if d.CharLibrary == nil {
		d.CharLibrary = []asset.Character{}
	}
	if d.EnvLibrary == nil {
		d.EnvLibrary = []asset.Environment{}
	}
	if d.PropLibrary == nil {
		d.PropLibrary = []asset.Prop{}
	}
	d.SavedElements = models.NormalizeElements(d.SavedElements)
	d.ChatMessages = models.NormalizeMessages(d.ChatMessages)
	return d
}

// StorageKey builds the identity-scoped storage key. An empty owner maps to
// the guest namespace.
func StorageKey(prefix, owner string) string {
	if owner == "" {
		owner = "guest"
	}
	return prefix + "_" + owner
}
