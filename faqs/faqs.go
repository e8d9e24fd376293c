package faqs

import (
	"context"
	"encoding/json"
	"log"
	"momfirst/utils"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FAQ is one entry of the FAQ slider.
type FAQ struct {
	FaqID     string `json:"faqId" bson:"faqid"`
	Question  string `json:"question" bson:"question"`
	Answer    string `json:"answer" bson:"answer"`
	Order     int    `json:"order" bson:"order"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

type Handler struct {
	col *mongo.Collection
}

func NewHandler(col *mongo.Collection) *Handler {
	return &Handler{col: col}
}

// GET /api/faqs — ordered by the operator-assigned position.
func (h *Handler) GetFAQs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	faqs, err := utils.FindAndDecode[FAQ](ctx, h.col, bson.M{}, opts)
	if err != nil {
		log.Printf("Error listing faqs: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve FAQs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "faqs": faqs})
}

// POST /api/faqs
func (h *Handler) AddFAQ(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var faq FAQ
	if err := json.NewDecoder(r.Body).Decode(&faq); err != nil || faq.Question == "" || faq.Answer == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ data")
		return
	}

	faq.FaqID = utils.GenerateRandomString(16)
	faq.CreatedAt = time.Now().Unix()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.col.InsertOne(ctx, faq); err != nil {
		log.Printf("Error inserting faq: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert FAQ")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "faq": faq})
}

// PUT /api/faqs/:faqId
func (h *Handler) EditFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	faqID := ps.ByName("faqId")

	var faq FAQ
	if err := json.NewDecoder(r.Body).Decode(&faq); err != nil || faq.Question == "" || faq.Answer == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid FAQ data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"question": faq.Question,
		"answer":   faq.Answer,
		"order":    faq.Order,
	}}
	res, err := h.col.UpdateOne(ctx, bson.M{"faqid": faqID}, update)
	if err != nil {
		log.Printf("Error updating faq %s: %v", faqID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update FAQ")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// DELETE /api/faqs/:faqId
func (h *Handler) DeleteFAQ(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	faqID := ps.ByName("faqId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.col.DeleteOne(ctx, bson.M{"faqid": faqID})
	if err != nil {
		log.Printf("Error deleting faq %s: %v", faqID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "FAQ not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
