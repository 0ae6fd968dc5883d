// Package registry keeps the pool of promoted generation artifacts that
// later requests use as grounding context. Entries are append-only from the
// user's perspective: nothing auto-prunes, and duplicates by name or kind
// are legitimate since each generation is a distinct artifact.
package registry

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fablesmith/mythosforge/pkg/models"
)

// Registry is the in-memory saved-element pool. It is owned and persisted
// by the session manager; all access happens on the single UI goroutine.
type Registry struct {
	elements []models.SavedElement
	newID    func() string
}

func New() *Registry {
	return &Registry{
		elements: []models.SavedElement{},
		newID:    func() string { return uuid.New().String() },
	}
}

// SetIDFunc overrides id generation. Test hook.
func (r *Registry) SetIDFunc(fn func() string) { r.newID = fn }

// Add appends a new element with a fresh id. No dedup.
func (r *Registry) Add(kind models.Mode, name, description, imageURL string) models.SavedElement {
	el := models.SavedElement{
		ID:          r.newID(),
		Type:        kind,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
	}
	r.elements = append(r.elements, el)
	return el
}

// Remove filters the element with the given id out of the pool.
func (r *Registry) Remove(id string) {
	kept := r.elements[:0]
	for _, el := range r.elements {
		if el.ID != id {
			kept = append(kept, el)
		}
	}
	r.elements = kept
}

// Elements returns a copy of the pool in insertion order. Callers building
// generation context hold a stable snapshot even if the pool is edited
// while a response streams in.
func (r *Registry) Elements() []models.SavedElement {
	out := make([]models.SavedElement, len(r.elements))
	copy(out, r.elements)
	return out
}

// SetElements replaces the pool, used on session load.
func (r *Registry) SetElements(els []models.SavedElement) {
	r.elements = make([]models.SavedElement, len(els))
	copy(r.elements, els)
}

// Len returns the number of saved elements.
func (r *Registry) Len() int { return len(r.elements) }

// BuildContext joins the pool into the textual grounding block included in
// generation requests. An empty registry yields an empty string.
func (r *Registry) BuildContext() string {
	return BuildContext(r.elements)
}

// BuildContext renders elements as one "[Saved <kind>]: <name> - <desc>"
// line each, in the order given.
func BuildContext(els []models.SavedElement) string {
	lines := make([]string, len(els))
	for i, el := range els {
		lines[i] = fmt.Sprintf("[Saved %s]: %s - %s", el.Type, el.Name, el.Description)
	}
	return strings.Join(lines, "\n")
}
