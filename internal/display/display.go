// Package display renders authoring state as terminal tables.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fablesmith/mythosforge/internal/asset"
	"github.com/fablesmith/mythosforge/internal/session"
	"github.com/fablesmith/mythosforge/pkg/models"
)

type Renderer struct {
	out io.Writer
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Sessions renders the saved-session list, most recent first. The session
// matching currentName is marked with ">".
func (d *Renderer) Sessions(snapshots []session.Snapshot, currentName string) {
	if len(snapshots) == 0 {
		fmt.Fprintln(d.out, "No saved sessions")
		return
	}

	fmt.Fprintf(d.out, "%-8s  %-24s  %s\n", "ID", "Name", "Modified")
	fmt.Fprintln(d.out, strings.Repeat("-", 55))

	for _, snap := range snapshots {
		marker := "  "
		if snap.Name == currentName {
			marker = "> "
		}
		fmt.Fprintf(d.out, "%s%-6s  %-24s  %s\n",
			marker,
			shortID(snap.ID),
			truncate(snap.Name, 24),
			humanize.Time(time.UnixMilli(snap.LastModified)))
	}
}

// Characters renders the character library.
func (d *Renderer) Characters(records []asset.Character) {
	if len(records) == 0 {
		fmt.Fprintln(d.out, "No saved characters")
		return
	}

	fmt.Fprintf(d.out, "%-8s  %-20s  %-16s  %s\n", "ID", "Name", "Species", "Role")
	fmt.Fprintln(d.out, strings.Repeat("-", 60))
	for _, c := range records {
		fmt.Fprintf(d.out, "%-8s  %-20s  %-16s  %s\n",
			shortID(c.ID), truncate(c.Name, 20), truncate(c.Species, 16), truncate(c.Role, 24))
	}
}

// Environments renders the environment library.
func (d *Renderer) Environments(records []asset.Environment) {
	if len(records) == 0 {
		fmt.Fprintln(d.out, "No saved environments")
		return
	}

	fmt.Fprintf(d.out, "%-8s  %-24s  %-16s  %s\n", "ID", "Name", "Biome", "Atmosphere")
	fmt.Fprintln(d.out, strings.Repeat("-", 64))
	for _, e := range records {
		fmt.Fprintf(d.out, "%-8s  %-24s  %-16s  %s\n",
			shortID(e.ID), truncate(e.Name, 24), truncate(e.Biome, 16), truncate(e.Atmosphere, 20))
	}
}

// Props renders the prop library.
func (d *Renderer) Props(records []asset.Prop) {
	if len(records) == 0 {
		fmt.Fprintln(d.out, "No saved props")
		return
	}

	fmt.Fprintf(d.out, "%-8s  %-24s  %-18s  %s\n", "ID", "Name", "Category", "Material")
	fmt.Fprintln(d.out, strings.Repeat("-", 64))
	for _, p := range records {
		fmt.Fprintf(d.out, "%-8s  %-24s  %-18s  %s\n",
			shortID(p.ID), truncate(p.Name, 24), truncate(p.Category, 18), truncate(p.Material, 18))
	}
}

// Elements renders the saved-element pool.
func (d *Renderer) Elements(els []models.SavedElement) {
	if len(els) == 0 {
		fmt.Fprintln(d.out, "No saved elements")
		return
	}

	fmt.Fprintf(d.out, "%-8s  %-12s  %-20s  %s\n", "ID", "Type", "Name", "Description")
	fmt.Fprintln(d.out, strings.Repeat("-", 75))
	for _, el := range els {
		fmt.Fprintf(d.out, "%-8s  %-12s  %-20s  %s\n",
			shortID(el.ID), el.Type, truncate(el.Name, 20), truncate(el.Description, 30))
	}
}

// Sheet renders every non-empty field of a draft as "label: value" lines.
// Fields come pre-ordered from the caller.
func (d *Renderer) Sheet(title string, fields [][2]string) {
	fmt.Fprintln(d.out, title)
	fmt.Fprintln(d.out, strings.Repeat("-", len(title)))
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(d.out, "%-22s %s\n", f[0]+":", f[1])
	}
}

// Transcript renders the chat log.
func (d *Renderer) Transcript(msgs []models.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(d.out, "No messages yet")
		return
	}
	for _, msg := range msgs {
		label := msg.Role
		if msg.IsStoryboard {
			label += " [storyboard]"
		}
		text := msg.Text
		if text == "" && msg.Image != "" {
			text = "(image)"
		}
		if msg.AudioData != "" {
			text += " (audio)"
		}
		fmt.Fprintf(d.out, "[%s] %s\n", label, text)
	}
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
