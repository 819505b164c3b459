package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Identity struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	CreatedAt time.Time
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Claims is what a session token proves about its bearer.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Session is returned by register and login.
type Session struct {
	Token    string
	Identity Identity
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
