package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"thoughtn/internal/auth"
	mw "thoughtn/internal/middleware"
)

type ResonanceHandler struct {
	db     *sqlx.DB
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewResonanceHandler(db *sqlx.DB, tokens *auth.TokenService, logger *zap.Logger) *ResonanceHandler {
	return &ResonanceHandler{db: db, tokens: tokens, logger: logger}
}

// Toggle flips the caller's resonance on a thought inside one
// transaction: insert-or-ignore, and when nothing was inserted the
// existing row is deleted. Concurrent duplicate toggles land as
// idempotent successes rather than constraint errors.
func (h *ResonanceHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	thoughtID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		h.logger.Error("could not start transaction", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	defer tx.Rollback()

	userID, err := userIDByName(tx, usernameFromCtx(r))
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		h.logger.Error("could not resolve user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	res, err := tx.Exec(`INSERT OR IGNORE INTO resonances (user_id, thought_id) VALUES (?, ?)`, userID, thoughtID)
	if err != nil {
		h.logger.Error("could not toggle resonance", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		h.logger.Error("could not toggle resonance", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	status := "Saved"
	if inserted == 0 {
		if _, err := tx.Exec(`DELETE FROM resonances WHERE user_id=? AND thought_id=?`, userID, thoughtID); err != nil {
			h.logger.Error("could not remove resonance", zap.Error(err))
			respondError(w, http.StatusInternalServerError, "server error")
			return
		}
		status = "Unsaved"
	}

	if err := tx.Commit(); err != nil {
		h.logger.Error("could not commit toggle", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

// Status reports whether the caller resonated with a thought. Any
// failure (bad token, unknown user, store error) degrades to
// {"resonated": false}; this endpoint never reports an error.
func (h *ResonanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	notResonated := map[string]bool{"resonated": false}

	thoughtID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusOK, notResonated)
		return
	}
	username, err := h.tokens.Validate(mw.TokenFromRequest(r))
	if err != nil {
		respondJSON(w, http.StatusOK, notResonated)
		return
	}
	userID, err := userIDByName(h.db, username)
	if err != nil {
		respondJSON(w, http.StatusOK, notResonated)
		return
	}

	var resonated bool
	err = h.db.Get(&resonated, `SELECT EXISTS (SELECT 1 FROM resonances WHERE user_id=? AND thought_id=?)`, userID, thoughtID)
	if err != nil {
		respondJSON(w, http.StatusOK, notResonated)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"resonated": resonated})
}
