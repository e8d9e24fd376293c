package calendar

import (
	"context"
	"encoding/json"
	"log"
	"momfirst/utils"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GET /api/slots/available?from=YYYY-MM-DD
// Returns future open slots grouped by date for the booking form. An empty
// list is a normal result, not an error.
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = time.Now().Format("2006-01-02")
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slots, err := h.store.FindFromDate(ctx, from)
	if err != nil {
		log.Printf("Error listing slots from %s: %v", from, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load slots")
		return
	}

	groups := GroupAvailable(slots)
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "dates": groups})
}

// GET /api/slots — full calendar for the management screen.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slots, err := h.store.All(ctx)
	if err != nil {
		log.Printf("Error listing slots: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load slots")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "slots": slots})
}

// POST /api/slots
func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var s Slot
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if s.Date == "" || s.Time == "" || s.Capacity <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	s.ID = utils.GenerateRandomDigitString(16)
	s.BookedCount = 0
	s.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Insert(ctx, s); err != nil {
		log.Printf("Error inserting slot: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create slot")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "slot": s})
}

// DELETE /api/slots/:id
func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Delete(ctx, id); err != nil {
		if err == ErrSlotNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Slot not found")
			return
		}
		log.Printf("Error deleting slot %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete slot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
