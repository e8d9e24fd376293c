package reviews

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

// Review is one entry of the homepage review slider.
type Review struct {
	ReviewID  string    `json:"reviewId" bson:"reviewid"`
	Author    string    `json:"author" bson:"author"`
	Quote     string    `json:"quote" bson:"quote"`
	Rating    int       `json:"rating" bson:"rating"`
	ImageURL  string    `json:"imageUrl,omitempty" bson:"imageurl,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Handler struct {
	col *mongo.Collection
}

func NewHandler(col *mongo.Collection) *Handler {
	return &Handler{col: col}
}

// GET /api/reviews
func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 10, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	reviews, err := utils.FindAndDecode[Review](ctx, h.col, bson.M{}, opts)
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "reviews": reviews})
}

// POST /api/reviews
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var review Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil ||
		review.Author == "" || review.Quote == "" || review.Rating < 1 || review.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	review.ReviewID = utils.GenerateRandomString(16)
	review.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.col.InsertOne(ctx, review); err != nil {
		log.Printf("Error inserting review: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert review")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "review": review})
}

// PUT /api/reviews/:reviewId
func (h *Handler) EditReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID := ps.ByName("reviewId")

	var review Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil ||
		review.Author == "" || review.Quote == "" || review.Rating < 1 || review.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid review data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"author":   review.Author,
		"quote":    review.Quote,
		"rating":   review.Rating,
		"imageurl": review.ImageURL,
	}}
	res, err := h.col.UpdateOne(ctx, bson.M{"reviewid": reviewID}, update)
	if err != nil {
		log.Printf("Error updating review %s: %v", reviewID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update review")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// DELETE /api/reviews/:reviewId
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviewID := ps.ByName("reviewId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.col.DeleteOne(ctx, bson.M{"reviewid": reviewID})
	if err != nil {
		log.Printf("Error deleting review %s: %v", reviewID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
