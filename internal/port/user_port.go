package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type UserRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (domain.Identity, error)
	GetUserByEmail(ctx context.Context, email string) (domain.Identity, error)

	CreateUser(ctx context.Context, identity domain.Identity) (domain.Identity, error)
}
