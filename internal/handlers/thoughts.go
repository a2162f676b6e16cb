package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ThoughtHandler struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewThoughtHandler(db *sqlx.DB, logger *zap.Logger) *ThoughtHandler {
	return &ThoughtHandler{db: db, logger: logger}
}

// thoughtRow is the JSON shape for every thought listing: the row joined
// with its author's username.
type thoughtRow struct {
	ID        int    `db:"id" json:"id"`
	Content   string `db:"content" json:"content"`
	BookTitle string `db:"book_title" json:"book_title"`
	Mood      string `db:"mood" json:"mood"`
	Username  string `db:"username" json:"username"`
}

type createThoughtRequest struct {
	Content   string `json:"content"`
	BookTitle string `json:"book_title"`
	Mood      string `json:"mood"` // optional, empty by default
}

func (h *ThoughtHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createThoughtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	req.BookTitle = strings.TrimSpace(req.BookTitle)
	if req.Content == "" || req.BookTitle == "" {
		respondError(w, http.StatusBadRequest, "content and book_title required")
		return
	}

	userID, err := userIDByName(h.db, usernameFromCtx(r))
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		h.logger.Error("could not resolve user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	if _, err := h.db.Exec(`INSERT INTO thoughts (content, book_title, mood, user_id) VALUES (?, ?, ?, ?)`,
		req.Content, req.BookTitle, req.Mood, userID); err != nil {
		h.logger.Error("could not save thought", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"msg": "Saved"})
}

// Random returns up to 8 thoughts, one representative per book title, in
// random order. Full-table scan; fine at this data volume.
func (h *ThoughtHandler) Random(w http.ResponseWriter, r *http.Request) {
	results := []thoughtRow{}
	err := h.db.Select(&results, `
		SELECT t.id, t.content, t.book_title, t.mood, u.username
		FROM thoughts t
		JOIN users u ON t.user_id = u.id
		GROUP BY t.book_title
		ORDER BY RANDOM() LIMIT 8`)
	if err != nil {
		h.logger.Error("could not fetch random thoughts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Mine returns the caller's authored thoughts (newest first) and the
// thoughts they resonated with (most recently resonated first).
func (h *ThoughtHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDByName(h.db, usernameFromCtx(r))
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		h.logger.Error("could not resolve user", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	created := []thoughtRow{}
	if err := h.db.Select(&created, `
		SELECT t.id, t.content, t.book_title, t.mood, u.username
		FROM thoughts t
		JOIN users u ON t.user_id = u.id
		WHERE u.id = ?
		ORDER BY t.id DESC`, userID); err != nil {
		h.logger.Error("could not fetch created thoughts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	saved := []thoughtRow{}
	if err := h.db.Select(&saved, `
		SELECT t.id, t.content, t.book_title, t.mood, u.username
		FROM thoughts t
		JOIN resonances res ON t.id = res.thought_id
		JOIN users u ON t.user_id = u.id
		WHERE res.user_id = ?
		ORDER BY res.timestamp DESC`, userID); err != nil {
		h.logger.Error("could not fetch saved thoughts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"created": created, "saved": saved})
}

// Search is unauthenticated substring search over title and content,
// newest first. An empty q matches everything.
func (h *ThoughtHandler) Search(w http.ResponseWriter, r *http.Request) {
	pattern := "%" + r.URL.Query().Get("q") + "%"
	results := []thoughtRow{}
	err := h.db.Select(&results, `
		SELECT t.id, t.content, t.book_title, t.mood, u.username
		FROM thoughts t
		JOIN users u ON t.user_id = u.id
		WHERE t.book_title LIKE ? OR t.content LIKE ?
		ORDER BY t.id DESC LIMIT 20`, pattern, pattern)
	if err != nil {
		h.logger.Error("could not search thoughts", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Delete removes the caller's own thought together with its resonances,
// as one transaction.
func (h *ThoughtHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	var ownerID int
	err = tx.Get(&ownerID, `SELECT user_id FROM thoughts WHERE id=?`, thoughtID)
	if err != nil {
		if err == sql.ErrNoRows {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}
		h.logger.Error("could not look up thought", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if ownerID != userID {
		respondError(w, http.StatusForbidden, "Not owner")
		return
	}

	// Resonances first: no cascade is configured in the schema.
	if _, err := tx.Exec(`DELETE FROM resonances WHERE thought_id=?`, thoughtID); err != nil {
		h.logger.Error("could not delete resonances", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if _, err := tx.Exec(`DELETE FROM thoughts WHERE id=?`, thoughtID); err != nil {
		h.logger.Error("could not delete thought", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if err := tx.Commit(); err != nil {
		h.logger.Error("could not commit delete", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"msg": "Deleted"})
}
