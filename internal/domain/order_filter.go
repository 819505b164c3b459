package domain

import (
	"fmt"
	"net/mail"

	"github.com/google/uuid"
)

type OrderScope int

const (
	// ScopeOwn restricts a listing to the caller's own orders.
	ScopeOwn OrderScope = iota
	// ScopeAllOwners lists orders of every owner, admins only.
	ScopeAllOwners
)

// OrderFilter has AND semantics across the set fields.
type OrderFilter struct {
	OwnerID *uuid.UUID
	// Email matches the shipping email of the order.
	Email string
}

func (f OrderFilter) Validate() error {
	if f.OwnerID != nil && *f.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: ownerID is empty", ErrValidation)
	}

	if f.Email != "" {
		if _, err := mail.ParseAddress(f.Email); err != nil {
			return NewValidationError("email")
		}
	}

	return nil
}
