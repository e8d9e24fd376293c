package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"momfirst/calendar"
	"momfirst/mq"
	"momfirst/utils"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	svc     *Service
	store   Store
	emitter *mq.Emitter
}

func NewHandler(svc *Service, store Store, emitter *mq.Emitter) *Handler {
	return &Handler{svc: svc, store: store, emitter: emitter}
}

// POST /api/bookings
// Body: {"slotId": "...", "firstName": ..., "lastName": ..., "email": ..., "mobile": ...}
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		SlotID string `json:"slotId"`
		Customer
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.SlotID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing slotId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.svc.Confirm(ctx, req.Customer, req.SlotID)
	if err != nil && b != nil {
		// booking written but the counter update failed; nothing rolls
		// back, the slot is now under-counted by one
		log.Printf("Booking %s inserted but slot update failed: %v", b.ID, err)
		utils.RespondWithJSON(w, http.StatusInternalServerError, map[string]any{
			"ok": false, "error": "persistence", "bookingId": b.ID,
		})
		return
	}
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			utils.RespondWithJSON(w, http.StatusBadRequest, map[string]any{
				"ok": false, "error": "validation", "fields": verr.Fields,
			})
		case errors.Is(err, ErrCapacityExceeded):
			// tell the client to refresh its slot listing
			utils.RespondWithJSON(w, http.StatusConflict, map[string]any{
				"ok": false, "error": "slot-full",
			})
		case errors.Is(err, calendar.ErrSlotNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Slot not found")
		default:
			log.Printf("Error confirming booking: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	go h.emitter.Emit(context.Background(), "booking-confirmed", mq.Index{
		EntityType: "booking", Method: "POST", EntityId: b.ID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "booking": b})
}

// GET /api/bookings?date=YYYY-MM-DD&status=confirmed
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 50, 200)
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	list, err := h.store.Find(ctx, date, status, skip, limit)
	if err != nil {
		log.Printf("Error listing bookings: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "bookings": list})
}
