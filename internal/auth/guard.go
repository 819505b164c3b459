package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Guard authenticates bearer tokens and authorizes role-gated operations.
type Guard struct {
	tokens *TokenService
	users  port.UserRepository
}

func NewGuard(tokens *TokenService, users port.UserRepository) (*Guard, error) {
	if tokens == nil {
		return nil, errors.New("tokens is nil")
	}
	if users == nil {
		return nil, errors.New("users is nil")
	}

	return &Guard{
		tokens: tokens,
		users:  users,
	}, nil
}

// Authenticate resolves the identity behind an Authorization header value.
// The store is only consulted once the token has been verified.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (domain.Identity, error) {
	var i domain.Identity

	token, ok := bearerToken(authorization)
	if !ok {
		return i, domain.ErrNoToken
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return i, err
	}

	i, err = g.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return i, fmt.Errorf("users.GetUser: %w", err)
	}

	return i, nil
}

func (g *Guard) Authorize(identity domain.Identity, required domain.Role) error {
	switch required {
	case domain.RoleUser:
		return nil
	case domain.RoleAdmin:
		if identity.IsAdmin() {
			return nil
		}
		return domain.ErrAdminOnly
	}

	return fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, required)
}

func bearerToken(authorization string) (string, bool) {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
