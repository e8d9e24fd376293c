package auth

import (
	"context"
	"encoding/json"
	"log"
	"momfirst/globals"
	"momfirst/middleware"
	"momfirst/utils"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// User is an operator account. The dashboard has no public signup; the
// first account registers freely, later ones need an authenticated caller.
type User struct {
	UserID       string `json:"userId" bson:"userid"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"`
	CreatedAt    int64  `json:"createdAt" bson:"createdAt"`
}

type Handler struct {
	users *mongo.Collection
	redis *redis.Client
}

func NewHandler(users *mongo.Collection, redis *redis.Client) *Handler {
	return &Handler{users: users, redis: redis}
}

func signToken(u User) (string, error) {
	claims := &middleware.Claims{
		Username: u.Username,
		UserID:   u.UserID,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user User
	err := h.users.FindOne(ctx, bson.M{"username": input.Username}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := signToken(user)
	if err != nil {
		log.Printf("Error signing token for %s: %v", user.Username, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	// track the active session so logout can invalidate it
	if err := h.redis.Set(ctx, "auth:token:"+user.UserID, token, tokenTTL).Err(); err != nil {
		log.Printf("Redis session store failed for %s: %v", user.UserID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": token,
		"user":  map[string]any{"userId": user.UserID, "username": user.Username, "role": user.Role},
	})
}

// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.redis.Del(ctx, "auth:token:"+userID).Result(); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// POST /api/auth/register
// Open only while the users collection is empty; after that the caller must
// already be logged in (route wrapped in OptionalAuth).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil ||
		input.Username == "" || len(input.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and a password of at least 8 characters are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Error counting users: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	if count > 0 {
		uid, _ := r.Context().Value(globals.UserIDKey).(string)
		role, _ := r.Context().Value(globals.RoleKey).(string)
		if uid == "" || role != "operator" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Only a logged-in operator can add accounts")
			return
		}
	}

	existing := h.users.FindOne(ctx, bson.M{"username": input.Username}).Err()
	if existing == nil {
		utils.RespondWithError(w, http.StatusConflict, "Username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := User{
		UserID:       utils.GetUUID(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         "operator",
		CreatedAt:    time.Now().Unix(),
	}
	if _, err := h.users.InsertOne(ctx, user); err != nil {
		log.Printf("Error inserting user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"ok":   true,
		"user": map[string]any{"userId": user.UserID, "username": user.Username, "role": user.Role},
	})
}
