package middleware

import (
	"momfirst/globals"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &Claims{
		Username: "op",
		UserID:   userID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	var gotUserID, gotRole string
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, "u1", "operator"))
	w := httptest.NewRecorder()
	handle(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "operator", gotRole)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", signTestToken(t, "u1", "operator")},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				called = true
			})

			r := httptest.NewRequest("GET", "/x", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handle(w, r, nil)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called)
		})
	}
}

func TestOptionalAuthPassesThroughWithoutToken(t *testing.T) {
	var gotUserID string
	called := false
	handle := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	r := httptest.NewRequest("GET", "/x", nil)
	w := httptest.NewRecorder()
	handle(w, r, nil)

	assert.True(t, called)
	assert.Equal(t, "", gotUserID)
}
