package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/internal/session"
	"github.com/fablesmith/mythosforge/pkg/models"
)

func TestSessions_MarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)

	now := time.Now().UnixMilli()
	d.Sessions([]session.Snapshot{
		{ID: "abcdef123456", Name: "Chapter One", LastModified: now},
		{ID: "fedcba654321", Name: "Chapter Two", LastModified: now},
	}, "Chapter Two")

	out := buf.String()
	if !strings.Contains(out, "abcdef") {
		t.Error("output missing shortened session id")
	}
	if !strings.Contains(out, "> fedcba") {
		t.Errorf("current session not marked:\n%s", out)
	}
	if strings.Contains(out, "> abcdef") {
		t.Errorf("non-current session marked:\n%s", out)
	}
}

func TestSessions_Empty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sessions(nil, "")

	if got := buf.String(); !strings.Contains(got, "No saved sessions") {
		t.Errorf("empty list output = %q", got)
	}
}

func TestCharacters_TruncatesLongNames(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Characters([]asset.Character{
		{ID: "1234567890", Name: "An Exceedingly Long Character Name", Species: "Elf", Role: "Scholar"},
	})

	out := buf.String()
	if !strings.Contains(out, "123456") {
		t.Error("output missing shortened id")
	}
	if !strings.Contains(out, "...") {
		t.Errorf("long name not truncated:\n%s", out)
	}
	if strings.Contains(out, "An Exceedingly Long Character Name") {
		t.Error("full name should not appear")
	}
}

func TestElements(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Elements([]models.SavedElement{
		{ID: "el-1", Type: models.ModeCharacter, Name: "Kaelen", Description: "A stoic knight."},
	})

	out := buf.String()
	for _, want := range []string{"Character", "Kaelen", "A stoic knight."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSheet_SkipsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Sheet("Character Draft", [][2]string{
		{"Name", "Kaelen Voss"},
		{"Species", ""},
		{"Role", "Mercenary"},
	})

	out := buf.String()
	if !strings.Contains(out, "Name:") || !strings.Contains(out, "Kaelen Voss") {
		t.Errorf("output missing populated field:\n%s", out)
	}
	if strings.Contains(out, "Species") {
		t.Errorf("empty field rendered:\n%s", out)
	}
}

func TestTranscript(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Transcript([]models.Message{
		{Role: models.RoleUser, Text: "Describe the castle."},
		{Role: models.RoleModel, Image: "data:image/png;base64,xxx", IsStoryboard: true},
		{Role: models.RoleModel, Text: "Hail!", AudioData: "UEsD"},
	})

	out := buf.String()
	if !strings.Contains(out, "[user] Describe the castle.") {
		t.Errorf("user line missing:\n%s", out)
	}
	if !strings.Contains(out, "[model [storyboard]] (image)") {
		t.Errorf("storyboard image line missing:\n%s", out)
	}
	if !strings.Contains(out, "Hail! (audio)") {
		t.Errorf("audio marker missing:\n%s", out)
	}
}
