package http

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"rentalshop-backend/internal/domain"
	"rentalshop-backend/internal/logger"
)

type loginRequest struct {
	Secret string `json:"secret"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Login checks the shared shop secret and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Auth.SecretHash), []byte(req.Secret)); err != nil {
		writeJSON(w, http.StatusUnauthorized, loginResponse{Success: false, Message: "invalid secret"})
		return
	}

	token, err := h.tokens.GenerateSessionToken()
	if err != nil {
		logger.Error("failed to issue session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, domain.Failed("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, domain.Failed("missing bearer token"))
			return
		}
		if _, err := h.tokens.ValidateToken(strings.TrimPrefix(auth, "Bearer ")); err != nil {
			writeJSON(w, http.StatusUnauthorized, domain.Failed("invalid or expired token"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
