package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/internal/registry"
	"github.com/fablesmith/mythosforge/pkg/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Confirm is the injected destructive-action port. The manager proceeds
// only on an affirmative response; a decline is a plain no-op.
type Confirm func(message string) bool

// Config carries everything the manager needs up front, so store logic
// never reaches for ambient state.
type Config struct {
	Namespace string // storage key prefix
	Owner     string // owning identity, "" for guest
	Confirm   Confirm
	Logger    *slog.Logger
}

// Manager owns all live authoring state and orchestrates snapshotting
// against the store. Everything runs on the caller's single goroutine; no
// locking is needed.
type Manager struct {
	store   *Store
	log     *slog.Logger
	confirm Confirm
	now     func() time.Time
	newID   func() string

	namespace string
	owner     string

	currentName string
	mode        models.Mode
	globals     models.GlobalData
	story       models.StoryData
	transcript  []models.Message

	Characters   *asset.Library[asset.Character]
	Environments *asset.Library[asset.Environment]
	Props        *asset.Library[asset.Prop]
	Registry     *registry.Registry
}

func NewManager(store *Store, cfg Config) *Manager {
	if cfg.Namespace == "" {
		cfg.Namespace = "mythos_forge_sessions"
	}
	if cfg.Confirm == nil {
		cfg.Confirm = func(string) bool { return true }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	m := &Manager{
		store:     store,
		log:       cfg.Logger,
		confirm:   cfg.Confirm,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		namespace: cfg.Namespace,
		owner:     cfg.Owner,
	}
	m.resetLiveState()
	return m
}

// SetNowFunc and SetIDFunc override the clock and id source. Test hooks.
func (m *Manager) SetNowFunc(fn func() time.Time) { m.now = fn }
func (m *Manager) SetIDFunc(fn func() string)     { m.newID = fn }

func (m *Manager) resetLiveState() {
	m.mode = models.ModeGlobals
	m.globals = models.DefaultGlobalData()
	m.story = models.DefaultStoryData()
	m.transcript = []models.Message{}
	m.Characters = asset.NewLibrary(asset.DefaultCharacter)
	m.Environments = asset.NewLibrary(asset.DefaultEnvironment)
	m.Props = asset.NewLibrary(asset.DefaultProp)
	m.Registry = registry.New()
	m.currentName = DefaultSessionName
}

func (m *Manager) storageKey() string {
	return StorageKey(m.namespace, m.owner)
}

// Owner returns the owning identity, "" for guest.
func (m *Manager) Owner() string { return m.owner }

// SetOwner switches the storage namespace to a new identity. Every
// subsequent list/save/load touches only the new identity's sessions.
func (m *Manager) SetOwner(owner string) {
	m.owner = owner
}

// Live-state accessors.

func (m *Manager) Mode() models.Mode     { return m.mode }
func (m *Manager) SetMode(v models.Mode) { m.mode = v.Normalized() }

func (m *Manager) Globals() models.GlobalData     { return m.globals }
func (m *Manager) SetGlobals(v models.GlobalData) { m.globals = v.Normalized() }

func (m *Manager) Story() models.StoryData     { return m.story }
func (m *Manager) SetStory(v models.StoryData) { m.story = v.Normalized() }

func (m *Manager) Transcript() []models.Message {
	out := make([]models.Message, len(m.transcript))
	copy(out, m.transcript)
	return out
}

func (m *Manager) AppendMessage(msg models.Message) {
	m.transcript = append(m.transcript, msg)
}

func (m *Manager) CurrentName() string { return m.currentName }

func (m *Manager) SetCurrentName(name string) {
	if name == "" {
		name = DefaultSessionName
	}
	m.currentName = name
}

// snapshotData copies all live state by value. Mutating the live draft
// after a save must not retroactively change the persisted snapshot, so
// every slice is duplicated.
func (m *Manager) snapshotData() SnapshotData {
	globals := m.globals
	globals.StyleReferenceImages = append([]string{}, globals.StyleReferenceImages...)
	story := m.story
	story.StoryScenes = append([]string{}, story.StoryScenes...)

	return SnapshotData{
		Mode:          m.mode,
		GlobalData:    globals,
		CharData:      m.Characters.Draft(),
		EnvData:       m.Environments.Draft(),
		PropData:      m.Props.Draft(),
		CharLibrary:   m.Characters.Records(),
		EnvLibrary:    m.Environments.Records(),
		PropLibrary:   m.Props.Records(),
		StoryData:     story,
		SavedElements: m.Registry.Elements(),
		ChatMessages:  m.Transcript(),
	}
}

func (m *Manager) applySnapshot(data SnapshotData) {
	data = data.Normalized()
	m.mode = data.Mode
	m.globals = data.GlobalData
	m.story = data.StoryData
	m.transcript = data.ChatMessages
	m.Characters.SetRecords(data.CharLibrary)
	m.Characters.SetDraft(data.CharData)
	m.Environments.SetRecords(data.EnvLibrary)
	m.Environments.SetDraft(data.EnvData)
	m.Props.SetRecords(data.PropLibrary)
	m.Props.SetDraft(data.PropData)
	m.Registry.SetElements(data.SavedElements)
}

// Sessions lists the current identity's snapshots, most recently modified
// first. Storage order is an implementation detail.
func (m *Manager) Sessions(ctx context.Context) ([]Snapshot, error) {
	snapshots, err := m.store.ReadAll(ctx, m.storageKey())
	if err != nil {
		return nil, err
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].LastModified > snapshots[j].LastModified
	})
	return snapshots, nil
}

// SaveSession snapshots all live state under the given name. A snapshot
// with the same name is overwritten at its list position; otherwise the new
// snapshot is appended. An empty name keeps the current session name.
func (m *Manager) SaveSession(ctx context.Context, name string) (Snapshot, error) {
	if name == "" {
		name = m.currentName
	}
	if name == "" {
		name = DefaultSessionName
	}

	snap := Snapshot{
		ID:           m.newID(),
		Name:         name,
		LastModified: m.now().UnixMilli(),
		Data:         m.snapshotData(),
	}

	key := m.storageKey()
	snapshots, err := m.store.ReadAll(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}

	replaced := false
	for i, existing := range snapshots {
		if existing.Name == snap.Name {
			snapshots[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		snapshots = append(snapshots, snap)
	}

	if err := m.store.WriteAll(ctx, key, snapshots); err != nil {
		return Snapshot{}, err
	}

	m.currentName = name
	return snap, nil
}

// LoadSession replaces every piece of live state with the snapshot's stored
// values. The user confirms first; a decline leaves everything untouched.
func (m *Manager) LoadSession(ctx context.Context, id string) error {
	snapshots, err := m.store.ReadAll(ctx, m.storageKey())
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		if snap.ID != id {
			continue
		}
		if !m.confirm(fmt.Sprintf("Load session %q? Unsaved changes will be lost.", snap.Name)) {
			return nil
		}
		m.applySnapshot(snap.Data)
		m.currentName = snap.Name
		return nil
	}
	return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// DeleteSession removes a snapshot from the persisted list after
// confirmation. Deleting an unknown id rewrites an unchanged list.
func (m *Manager) DeleteSession(ctx context.Context, id string) error {
	if !m.confirm("Are you sure you want to delete this session?") {
		return nil
	}

	key := m.storageKey()
	snapshots, err := m.store.ReadAll(ctx, key)
	if err != nil {
		return err
	}

	kept := snapshots[:0]
	for _, snap := range snapshots {
		if snap.ID != id {
			kept = append(kept, snap)
		}
	}
	return m.store.WriteAll(ctx, key, kept)
}

// NewSession resets all live state to its defaults after confirmation, as
// if no snapshot had ever been loaded.
func (m *Manager) NewSession() {
	if !m.confirm("Start a new session? Unsaved changes will be lost.") {
		return
	}
	m.resetLiveState()
}
