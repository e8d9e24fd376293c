package bookings

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log"
	"momfirst/utils"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

func hmacSecret() []byte {
	if s := os.Getenv("PASS_HMAC_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("momfirst-pass-secret")
}

// signedPayload returns "bookingID|slotID|timestamp|signature" for the
// check-in QR code.
func signedPayload(bookingID, slotID string) string {
	data := fmt.Sprintf("%s|%s|%d", bookingID, slotID, time.Now().Unix())
	h := hmac.New(sha256.New, hmacSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/bookings/:id/pass — printable PDF confirmation with a signed QR.
func (h *Handler) PrintPass(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	if id == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	b, err := h.store.Get(ctx, id)
	if err != nil {
		if err == ErrBookingNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
			return
		}
		log.Printf("Error loading booking %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}

	qrPNG, err := qrcode.Encode(signedPayload(b.ID, b.SlotID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Mommy First Booking")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s %s", b.FirstName, b.LastName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s at %s", b.Date, b.Time))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ref: %s", b.ID))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
