package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues admin tokens for the export endpoint. Login is disabled
// entirely when no admin password hash is configured.
type AuthHandler struct {
	adminPasswordHash string
	jwtSecret         string
	tokenDuration     time.Duration
}

func NewAuthHandler(adminPasswordHash, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{adminPasswordHash: adminPasswordHash, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	if h.adminPasswordHash == "" {
		http.Error(w, "Admin login disabled", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Credentials not found", http.StatusUnauthorized)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr}, http.StatusOK)
}
