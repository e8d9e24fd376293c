package sections

import (
	"context"
	"encoding/json"
	"log"
	"momfirst/mq"
	"momfirst/utils"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	store   Store
	emitter *mq.Emitter
}

func NewHandler(store Store, emitter *mq.Emitter) *Handler {
	return &Handler{store: store, emitter: emitter}
}

// GET /api/sections/:id
// Absent documents fall back to the registered defaults; only an unknown
// section id is an error.
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	defaults := DefaultsFor(id)
	if defaults == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown section")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := h.store.Get(ctx, id)
	if err == ErrSectionNotFound {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{
			"ok": true, "section": defaults, "saved": false,
		})
		return
	}
	if err != nil {
		log.Printf("Error loading section %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load section")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok": true, "section": doc, "saved": true,
	})
}

// PUT /api/sections/:id?merge=true
// Writes the whole section body; with merge, untouched sibling fields
// survive. An unchanged body is skipped entirely.
func (h *Handler) SaveSection(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if DefaultsFor(id) == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Unknown section")
		return
	}

	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	merge := r.URL.Query().Get("merge") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// skip the write when nothing actually changed
	if existing, err := h.store.Get(ctx, id); err == nil && !merge && Equal(existing, doc) {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "changed": false})
		return
	}

	if err := h.store.Set(ctx, id, doc, merge); err != nil {
		log.Printf("Error saving section %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save section")
		return
	}

	go h.emitter.Emit(context.Background(), "section-updated", mq.Index{
		EntityType: "section", Method: "PUT", EntityId: id,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "changed": true})
}

// GET /api/sections — the section ids the dashboard can edit.
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ids := make([]string, 0, len(Defaults))
	for id := range Defaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "sections": ids})
}
