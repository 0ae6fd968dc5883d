package asset

import "github.com/google/uuid"

// Record is implemented by every library record kind. WithID returns a copy
// carrying the given id; records are plain value types, so copies are deep.
type Record[T any] interface {
	RecordID() string
	WithID(id string) T
}

// Library is an insertion-ordered, unique-by-id collection of one record
// kind, plus the current draft for that kind. All mutation goes through
// Upsert, Remove and the draft setters; nothing reorders records behind the
// caller's back.
type Library[T Record[T]] struct {
	records []T
	draft   T
	blank   func() T
	newID   func() string
}

// NewLibrary creates an empty library whose drafts reset to blank().
func NewLibrary[T Record[T]](blank func() T) *Library[T] {
	return &Library[T]{
		blank: blank,
		draft: blank(),
		newID: func() string { return uuid.New().String() },
	}
}

// SetIDFunc overrides id generation. Test hook.
func (l *Library[T]) SetIDFunc(fn func() string) { l.newID = fn }

// Draft returns the current draft record.
func (l *Library[T]) Draft() T { return l.draft }

// SetDraft replaces the current draft without touching the stored records.
func (l *Library[T]) SetDraft(d T) { l.draft = d }

// Records returns a copy of the stored records in insertion order.
func (l *Library[T]) Records() []T {
	out := make([]T, len(l.records))
	copy(out, l.records)
	return out
}

// SetRecords replaces the stored records, used when a session snapshot is
// loaded. A nil slice resets to empty.
func (l *Library[T]) SetRecords(recs []T) {
	l.records = make([]T, len(recs))
	copy(l.records, recs)
}

// Len returns the number of stored records.
func (l *Library[T]) Len() int { return len(l.records) }

// Get looks up a record by id.
func (l *Library[T]) Get(id string) (T, bool) {
	for _, rec := range l.records {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Upsert saves the draft into the library. A draft without an id gets a new
// one and is appended; a draft whose id matches a stored record replaces it
// in place; an id with no match is appended as new. The draft follows the
// persisted record and the record is returned, always carrying an id.
func (l *Library[T]) Upsert(draft T) T {
	rec := draft
	if rec.RecordID() == "" {
		rec = rec.WithID(l.newID())
		l.records = append(l.records, rec)
	} else {
		replaced := false
		for i, existing := range l.records {
			if existing.RecordID() == rec.RecordID() {
				l.records[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			l.records = append(l.records, rec)
		}
	}
	l.draft = rec
	return rec
}

// Load sets the draft from a stored record. An empty or unknown id resets
// the draft to the default template; a lookup miss is not an error.
func (l *Library[T]) Load(id string) T {
	if id == "" {
		l.draft = l.blank()
		return l.draft
	}
	if rec, ok := l.Get(id); ok {
		l.draft = rec
		return l.draft
	}
	l.draft = l.blank()
	return l.draft
}

// Remove deletes the record with the given id. When the removed record was
// the current draft, the draft resets to the default template. Removing an
// empty or unknown id is a no-op.
func (l *Library[T]) Remove(id string) {
	if id == "" {
		return
	}
	kept := l.records[:0]
	for _, rec := range l.records {
		if rec.RecordID() != id {
			kept = append(kept, rec)
		}
	}
	l.records = kept
	if l.draft.RecordID() == id {
		l.draft = l.blank()
	}
}

// New detaches the draft from any stored record so the next Upsert creates
// a new entry.
func (l *Library[T]) New() {
	l.draft = l.blank()
}
