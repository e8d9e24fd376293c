package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"identical maps", map[string]any{"a": "x"}, map[string]any{"a": "x"}, true},
		{"key order irrelevant",
			map[string]any{"a": "x", "b": "y"},
			map[string]any{"b": "y", "a": "x"}, true},
		{"different value", map[string]any{"a": "x"}, map[string]any{"a": "y"}, false},
		{"missing key", map[string]any{"a": "x"}, map[string]any{}, false},
		{"int equals float", map[string]any{"n": 2}, map[string]any{"n": float64(2)}, true},
		{"nested slices", map[string]any{"l": []any{"a", "b"}}, map[string]any{"l": []any{"a", "b"}}, true},
		{"slice order matters", map[string]any{"l": []any{"a", "b"}}, map[string]any{"l": []any{"b", "a"}}, false},
		{"nil vs missing differ", map[string]any{"a": nil}, map[string]any{}, false},
		{"nils equal", nil, nil, true},
		{"bool mismatch", true, "true", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEditorCleanAfterLoad(t *testing.T) {
	e := NewEditor("about", DefaultsFor("about"))
	e.Load(map[string]any{"title": "About us", "body": "hello", "imageUrl": ""})

	assert.False(t, e.Dirty(), "freshly loaded editor must not be dirty")
}

func TestEditorDirtyAfterChange(t *testing.T) {
	e := NewEditor("about", DefaultsFor("about"))
	e.Load(map[string]any{"title": "About us", "body": "hello", "imageUrl": ""})

	e.Set("body", "updated")
	assert.True(t, e.Dirty())

	// setting the field back to the saved value clears the dirty state
	e.Set("body", "hello")
	assert.False(t, e.Dirty())
}

func TestEditorCancelRestoresSavedSnapshot(t *testing.T) {
	e := NewEditor("about", DefaultsFor("about"))
	e.Load(map[string]any{"title": "About us", "body": "hello", "imageUrl": ""})

	e.Set("body", "scratch edits")
	e.Set("title", "something else")
	require.True(t, e.Dirty())

	e.Cancel()
	assert.False(t, e.Dirty())
	assert.Equal(t, "hello", e.Get("body"))
	assert.Equal(t, "About us", e.Get("title"))
}

func TestEditorCancelWithoutSaveRestoresDefaults(t *testing.T) {
	e := NewEditor("about", DefaultsFor("about"))
	// never loaded a stored doc: defaults stand
	e.Set("title", "draft")
	require.True(t, e.Dirty())

	e.Cancel()
	assert.False(t, e.Dirty())
	assert.Equal(t, "About us", e.Get("title"))
}

func TestEditorMarkSaved(t *testing.T) {
	e := NewEditor("about", DefaultsFor("about"))
	e.Set("title", "new title")
	require.True(t, e.Dirty())

	e.MarkSaved()
	assert.False(t, e.Dirty())

	// cancel now returns to the newly saved snapshot, not the defaults
	e.Set("title", "scratch")
	e.Cancel()
	assert.Equal(t, "new title", e.Get("title"))
}

func TestEditorSnapshotIsACopy(t *testing.T) {
	e := NewEditor("navigation", DefaultsFor("navigation"))
	snap := e.Snapshot()
	snap["logo"] = "mutated"

	assert.False(t, e.Dirty(), "mutating a snapshot must not touch the editor")
}
