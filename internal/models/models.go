package models

import "time"

type User struct {
	ID           int    `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

type Thought struct {
	ID        int    `db:"id" json:"id"`
	Content   string `db:"content" json:"content"`
	BookTitle string `db:"book_title" json:"book_title"`
	Mood      string `db:"mood" json:"mood"`
	UserID    int    `db:"user_id" json:"user_id"`
}

// Resonance is a bookmark of a thought by a user. At most one row per
// (user, thought) pair, enforced by the composite primary key.
type Resonance struct {
	UserID    int       `db:"user_id" json:"user_id"`
	ThoughtID int       `db:"thought_id" json:"thought_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
