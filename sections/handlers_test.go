package sections

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory sections.Store with the same merge semantics
// as the mongo-backed one: merge writes only the provided top-level fields.
type fakeStore struct {
	docs     map[string]map[string]any
	setCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]map[string]any)}
}

func (f *fakeStore) Get(_ context.Context, id string) (map[string]any, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return d, nil
}

func (f *fakeStore) Set(_ context.Context, id string, doc map[string]any, merge bool) error {
	f.setCalls++
	if merge {
		merged, ok := f.docs[id]
		if !ok {
			merged = map[string]any{}
		} else {
			merged = cloneDoc(merged)
		}
		for k, v := range doc {
			merged[k] = v
		}
		f.docs[id] = merged
		return nil
	}
	f.docs[id] = cloneDoc(doc)
	return nil
}

func saveSection(t *testing.T, h *Handler, id, query, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("PUT", "/api/sections/"+id+query, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.SaveSection(w, r, httprouter.Params{{Key: "id", Value: id}})
	return w
}

func TestSaveSectionMergePreservesSiblingFields(t *testing.T) {
	store := newFakeStore()
	store.docs["about"] = map[string]any{
		"title": "About us", "body": "hello", "imageUrl": "/img.png",
	}
	h := NewHandler(store, nil)

	w := saveSection(t, h, "about", "?merge=true", `{"body":"updated"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"changed":true`)

	doc := store.docs["about"]
	assert.Equal(t, "updated", doc["body"])
	assert.Equal(t, "About us", doc["title"], "untouched sibling fields must survive a merge")
	assert.Equal(t, "/img.png", doc["imageUrl"])
}

func TestSaveSectionUnchangedSkipsWrite(t *testing.T) {
	store := newFakeStore()
	store.docs["about"] = map[string]any{
		"title": "About us", "body": "hello", "imageUrl": "",
	}
	h := NewHandler(store, nil)

	w := saveSection(t, h, "about", "", `{"title":"About us","body":"hello","imageUrl":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"changed":false`)
	assert.Equal(t, 0, store.setCalls, "an unchanged document must not be written")
}

func TestSaveSectionChangedBodyWrites(t *testing.T) {
	store := newFakeStore()
	store.docs["about"] = map[string]any{
		"title": "About us", "body": "hello", "imageUrl": "",
	}
	h := NewHandler(store, nil)

	w := saveSection(t, h, "about", "", `{"title":"About us","body":"new","imageUrl":""}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"changed":true`)
	require.Equal(t, 1, store.setCalls)
	assert.Equal(t, "new", store.docs["about"]["body"])
}

func TestGetSectionFallsBackToDefaults(t *testing.T) {
	h := NewHandler(newFakeStore(), nil)

	r := httptest.NewRequest("GET", "/api/sections/about", nil)
	w := httptest.NewRecorder()
	h.GetSection(w, r, httprouter.Params{{Key: "id", Value: "about"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"saved":false`)
	assert.Contains(t, w.Body.String(), "About us")
}
