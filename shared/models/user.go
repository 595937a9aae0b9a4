package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"` // never serialized
	Avatar       string     `db:"avatar" json:"avatar"`
	Email        *string    `db:"email" json:"email"`
	Roles        []string   `db:"roles" json:"roles"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginTime"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
}

// AvatarFor derives the avatar glyph from a username: its first character, upper-cased.
func AvatarFor(username string) string {
	username = strings.TrimSpace(username)
	r, size := utf8.DecodeRuneInString(username)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
