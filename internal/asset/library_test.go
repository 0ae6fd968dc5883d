package asset

import (
	"fmt"
	"math/rand"
	"testing"
)

func testLibrary(t *testing.T) *Library[Character] {
	t.Helper()
	lib := NewLibrary(DefaultCharacter)
	n := 0
	lib.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	return lib
}

func TestLibrary_UpsertAssignsID(t *testing.T) {
	lib := testLibrary(t)

	draft := DefaultCharacter()
	draft.Name = "Lyra"

	saved := lib.Upsert(draft)

	if saved.ID == "" {
		t.Error("Upsert() did not assign an id")
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
	if lib.Draft().ID != saved.ID {
		t.Error("Upsert() did not move the draft to the saved record")
	}
}

func TestLibrary_UpsertIdempotent(t *testing.T) {
	lib := testLibrary(t)

	saved := lib.Upsert(Character{Name: "Lyra"})

	saved.Name = "Lyra Sunstrider"
	second := lib.Upsert(saved)

	if lib.Len() != 1 {
		t.Errorf("Len() after second Upsert = %d, want 1", lib.Len())
	}
	got, ok := lib.Get(saved.ID)
	if !ok {
		t.Fatalf("Get(%q) missing after upsert", saved.ID)
	}
	if got.Name != "Lyra Sunstrider" {
		t.Errorf("record Name = %q, want second call's value", got.Name)
	}
	if second.ID != saved.ID {
		t.Errorf("second Upsert() id = %q, want %q", second.ID, saved.ID)
	}
}

func TestLibrary_UpsertUnknownIDAppends(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "first"})

	stray := Character{ID: "imported-7", Name: "imported"}
	lib.Upsert(stray)

	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lib.Len())
	}
	if got, ok := lib.Get("imported-7"); !ok || got.Name != "imported" {
		t.Errorf("Get(imported-7) = %+v, %v", got, ok)
	}
}

func TestLibrary_UpsertPreservesPosition(t *testing.T) {
	lib := testLibrary(t)
	a := lib.Upsert(Character{Name: "a"})
	lib.Upsert(Character{Name: "b"})

	a.Name = "a2"
	lib.Upsert(a)

	recs := lib.Records()
	if recs[0].Name != "a2" || recs[1].Name != "b" {
		t.Errorf("Records() order = [%s %s], want [a2 b]", recs[0].Name, recs[1].Name)
	}
}

func TestLibrary_LoadEmptyIDResetsDraft(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "saved"})

	got := lib.Load("")

	want := DefaultCharacter()
	if got != want {
		t.Errorf("Load(\"\") = %+v, want default template", got)
	}
}

func TestLibrary_LoadMissingIDResetsDraft(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "saved"})

	got := lib.Load("nonexistent")

	if got != DefaultCharacter() {
		t.Errorf("Load(nonexistent) = %+v, want default template", got)
	}
}

func TestLibrary_LoadCopiesRecord(t *testing.T) {
	lib := testLibrary(t)
	saved := lib.Upsert(Character{Name: "saved"})

	draft := lib.Load(saved.ID)
	draft.Name = "edited but not saved"

	got, _ := lib.Get(saved.ID)
	if got.Name != "saved" {
		t.Error("editing a loaded draft mutated the stored record")
	}
}

func TestLibrary_Remove(t *testing.T) {
	lib := testLibrary(t)
	a := lib.Upsert(Character{Name: "a"})
	b := lib.Upsert(Character{Name: "b"})

	lib.Remove(a.ID)

	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
	if _, ok := lib.Get(a.ID); ok {
		t.Error("removed record still present")
	}
	if _, ok := lib.Get(b.ID); !ok {
		t.Error("unrelated record was removed")
	}
}

func TestLibrary_RemoveCurrentDraftResets(t *testing.T) {
	lib := testLibrary(t)
	saved := lib.Upsert(Character{Name: "doomed"})

	lib.Remove(saved.ID)

	if lib.Draft() != DefaultCharacter() {
		t.Errorf("Draft() after removing the draft's record = %+v, want default", lib.Draft())
	}
}

func TestLibrary_RemoveEmptyIDNoop(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "kept"})

	lib.Remove("")

	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
}

func TestLibrary_NewDetachesDraft(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "saved"})

	lib.New()
	draft := lib.Draft()
	draft.Name = "fresh"
	lib.Upsert(draft)

	if lib.Len() != 2 {
		t.Errorf("Len() after New+Upsert = %d, want 2 (save created a new record)", lib.Len())
	}
}

func TestLibrary_SetRecordsNil(t *testing.T) {
	lib := testLibrary(t)
	lib.Upsert(Character{Name: "old"})

	lib.SetRecords(nil)

	if lib.Len() != 0 {
		t.Errorf("Len() after SetRecords(nil) = %d, want 0", lib.Len())
	}
	if lib.Records() == nil {
		t.Error("Records() returned nil slice")
	}
}

func TestDefaultCharacter_VoiceProfile(t *testing.T) {
	if got := DefaultCharacter().VoiceProfile; got != "Puck" {
		t.Errorf("DefaultCharacter().VoiceProfile = %q, want Puck", got)
	}
}

func TestRandomCharacter_FillsFromPools(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := RandomCharacter(r)

	if c.Name == "" || c.Species == "" || c.VoiceProfile == "" {
		t.Errorf("RandomCharacter() left core fields empty: %+v", c)
	}
	if c.ID != "" {
		t.Error("RandomCharacter() assigned an id; randomized drafts must be unsaved")
	}

	found := false
	for _, v := range poolVoices {
		if c.VoiceProfile == v {
			found = true
		}
	}
	if !found {
		t.Errorf("VoiceProfile %q not drawn from pool", c.VoiceProfile)
	}
}

func TestRandomEnvironmentAndProp(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	e := RandomEnvironment(r)
	if e.Biome == "" || e.Atmosphere == "" {
		t.Errorf("RandomEnvironment() left fields empty: %+v", e)
	}

	p := RandomProp(r)
	if p.Category == "" || p.Material == "" {
		t.Errorf("RandomProp() left fields empty: %+v", p)
	}
}
