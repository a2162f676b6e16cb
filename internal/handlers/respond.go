package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// userIDByName maps a token subject back to a user id. sql.ErrNoRows
// means the subject no longer names a user.
func userIDByName(q sqlx.Queryer, username string) (int, error) {
	var id int
	err := sqlx.Get(q, &id, `SELECT id FROM users WHERE username=?`, username)
	return id, err
}

func usernameFromCtx(r *http.Request) string {
	u, _ := r.Context().Value("username").(string)
	return u
}
