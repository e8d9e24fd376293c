package sections

// Editor models the section form lifecycle: a saved snapshot, a working
// copy the operator edits, and a dirty check between them. Save is only
// meaningful while Dirty; Cancel throws the working copy away.
type Editor struct {
	id        string
	defaults  map[string]any
	saved     map[string]any
	working   map[string]any
	everSaved bool
}

func NewEditor(id string, defaults map[string]any) *Editor {
	e := &Editor{id: id, defaults: defaults}
	e.saved = cloneDoc(defaults)
	e.working = cloneDoc(defaults)
	return e
}

// Load installs a stored document as both snapshots. A nil document means
// the section was never saved; the defaults stand unchanged.
func (e *Editor) Load(doc map[string]any) {
	if doc == nil {
		e.saved = cloneDoc(e.defaults)
		e.working = cloneDoc(e.defaults)
		e.everSaved = false
		return
	}
	e.saved = cloneDoc(doc)
	e.working = cloneDoc(doc)
	e.everSaved = true
}

func (e *Editor) ID() string { return e.id }

// Set updates one field of the working copy.
func (e *Editor) Set(field string, value any) {
	e.working[field] = value
}

// Get reads one field of the working copy.
func (e *Editor) Get(field string) any {
	return e.working[field]
}

// Dirty reports whether the working copy differs structurally from the
// saved snapshot. The Save button is enabled exactly when this is true.
func (e *Editor) Dirty() bool {
	return !Equal(e.working, e.saved)
}

// Snapshot returns a copy of the working document for persisting.
func (e *Editor) Snapshot() map[string]any {
	return cloneDoc(e.working)
}

// MarkSaved promotes the working copy to the saved snapshot after a
// successful write.
func (e *Editor) MarkSaved() {
	e.saved = cloneDoc(e.working)
	e.everSaved = true
}

// Cancel restores the working copy from the saved snapshot, or from the
// defaults when nothing was ever saved.
func (e *Editor) Cancel() {
	if !e.everSaved {
		e.working = cloneDoc(e.defaults)
		return
	}
	e.working = cloneDoc(e.saved)
}

func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneDoc(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
