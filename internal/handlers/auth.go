package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"thoughtn/internal/auth"
	"thoughtn/internal/models"
)

type AuthHandler struct {
	db     *sqlx.DB
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewAuthHandler(db *sqlx.DB, tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCredentials(r *http.Request) (credentials, bool) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return c, false
	}
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" || c.Password == "" {
		return c, false
	}
	return c, true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCredentials(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}

	hashed, err := auth.HashPassword(c.Password)
	if err != nil {
		h.logger.Error("could not hash password", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	if _, err := h.db.Exec(`INSERT INTO users (username, password_hash) VALUES (?, ?)`, c.Username, hashed); err != nil {
		if isUniqueViolation(err) {
			respondError(w, http.StatusBadRequest, "Exists")
			return
		}
		h.logger.Error("could not create user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"msg": "Created"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCredentials(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "username and password required")
		return
	}

	var user models.User
	err := h.db.Get(&user, `SELECT id, username, password_hash FROM users WHERE username=?`, c.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			// Uniform with the wrong-password path: no username enumeration.
			respondError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}
		h.logger.Error("could not look up user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if !auth.CheckPassword(c.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Bad credentials")
		return
	}

	token, err := h.tokens.Issue(user.Username)
	if err != nil {
		h.logger.Error("could not issue token", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
