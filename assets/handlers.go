package assets

import (
	"context"
	"log"
	"momfirst/utils"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Handler struct {
	col *mongo.Collection
}

func NewHandler(col *mongo.Collection) *Handler {
	return &Handler{col: col}
}

// POST /api/assets — multipart upload, field "file".
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	if !extensionAllowed(header.Filename) || !allowedMIMEs[header.Header.Get("Content-Type")] {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image type")
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "File is not a valid image")
		return
	}

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Printf("Error creating upload dirs: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.New().String() + ext
	fullPath := filepath.Join(uploadDir, name)
	thumbPath := filepath.Join(thumbDir, name)

	if err := imaging.Save(img, fullPath); err != nil {
		log.Printf("Error saving asset %s: %v", name, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	// 320px-wide thumbnail for the picker grid
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Printf("Error saving thumbnail %s: %v", name, err)
		os.Remove(fullPath)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	bounds := img.Bounds()
	asset := Asset{
		AssetID:   uuid.New().String(),
		FileName:  header.Filename,
		URL:       "/" + fullPath,
		ThumbURL:  "/" + thumbPath,
		Size:      header.Size,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.col.InsertOne(ctx, asset); err != nil {
		log.Printf("Error inserting asset metadata: %v", err)
		os.Remove(fullPath)
		os.Remove(thumbPath)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{"ok": true, "asset": asset})
}

// GET /api/assets — newest first, paginated for the picker.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 24, 100)
	opts := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	assets, err := utils.FindAndDecode[Asset](ctx, h.col, bson.M{}, opts)
	if err != nil {
		log.Printf("Error listing assets: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load assets")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "assets": assets})
}

// DELETE /api/assets/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var asset Asset
	err := h.col.FindOne(ctx, bson.M{"assetid": id}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}
	if err != nil {
		log.Printf("Error loading asset %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	if _, err := h.col.DeleteOne(ctx, bson.M{"assetid": id}); err != nil {
		log.Printf("Error deleting asset %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	// file removal is best-effort; metadata is already gone
	os.Remove(strings.TrimPrefix(asset.URL, "/"))
	os.Remove(strings.TrimPrefix(asset.ThumbURL, "/"))

	w.WriteHeader(http.StatusNoContent)
}
