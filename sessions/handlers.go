package sessions

import (
	"context"
	"encoding/json"
	"log"
	"momfirst/mq"
	"momfirst/utils"
	"net/http"
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

func validSession(s Session) string {
	if s.Name == "" {
		return "Missing session name"
	}
	if len(s.Dates) == 0 {
		return "A session needs at least one date"
	}
	for _, d := range s.Dates {
		if _, err := time.Parse("2006-01-02", d.Date); err != nil {
			return "Dates must be YYYY-MM-DD"
		}
		if len(d.Slots) == 0 {
			return "Every date needs at least one slot"
		}
		for _, sl := range d.Slots {
			if sl.Time == "" || sl.Capacity <= 0 {
				return "Every slot needs a time and a positive capacity"
			}
		}
	}
	return ""
}

// POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var s Session
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg := validSession(s); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// fresh sessions start with zero booked on every slot
	for i := range s.Dates {
		for j := range s.Dates[i].Slots {
			s.Dates[i].Slots[j].Booked = 0
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ids, err := h.store.IDs(ctx)
	if err != nil {
		log.Printf("Error scanning session ids: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	s.ID, err = GenerateID(s.EarliestDate(), ids)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid session dates")
		return
	}
	s.CreatedAt = time.Now().Unix()

	if err := h.store.Insert(ctx, s); err != nil {
		log.Printf("Error inserting session %s: %v", s.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	go h.emitter.Emit(context.Background(), "session-created", mq.Index{
		EntityType: "session", Method: "POST", EntityId: s.ID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "session": s})
}

// GET /api/sessions
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := h.store.All(ctx)
	if err != nil {
		log.Printf("Error listing sessions: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": list})
}

// GET /api/sessions/:id
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	s, err := h.store.Get(ctx, ps.ByName("id"))
	if err != nil {
		if err == ErrSessionNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("Error loading session: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "session": s})
}

// PUT /api/sessions/:id — whole-document overwrite, last write wins.
func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var s Session
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg := validSession(s); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	s.ID = ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Replace(ctx, s); err != nil {
		if err == ErrSessionNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("Error updating session %s: %v", s.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	go h.emitter.Emit(context.Background(), "session-updated", mq.Index{
		EntityType: "session", Method: "PUT", EntityId: s.ID,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "session": s})
}

// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Delete(ctx, id); err != nil {
		if err == ErrSessionNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("Error deleting session %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	go h.emitter.Emit(context.Background(), "session-deleted", mq.Index{
		EntityType: "session", Method: "DELETE", EntityId: id,
	})

	w.WriteHeader(http.StatusNoContent)
}
