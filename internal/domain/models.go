package domain

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of a session token. The subject is the user id.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// Identity is what a verified session token says about its holder.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}
