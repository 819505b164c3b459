package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q: db.New(pool),
	}
}

func (r *userRepository) GetUser(ctx context.Context, userID uuid.UUID) (domain.Identity, error) {
	var i domain.Identity

	dbUser, err := r.q.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return i, fmt.Errorf("q.GetUser: %w", domain.ErrUserNotFound)
		}
		return i, fmt.Errorf("q.GetUser: %w", err)
	}

	return mapDBUserToDomain(dbUser)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.Identity, error) {
	var i domain.Identity

	dbUser, err := r.q.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return i, fmt.Errorf("q.GetUserByEmail: %w", domain.ErrUserNotFound)
		}
		return i, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapDBUserToDomain(dbUser)
}

func (r *userRepository) CreateUser(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	var i domain.Identity

	if identity.PasswordHash == "" {
		return i, errors.New("password hash is empty")
	}

	dbUser, err := r.q.CreateUser(ctx, db.CreateUserParams{
		Name:         identity.Name,
		Email:        domain.NormalizeEmail(identity.Email),
		PasswordHash: identity.PasswordHash,
		Role:         string(identity.Role),
	})
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return i, fmt.Errorf("q.CreateUser: %w", domain.ErrEmailExists)
		}
		return i, fmt.Errorf("q.CreateUser: %w", err)
	}

	return mapDBUserToDomain(dbUser)
}

func mapDBUserToDomain(u db.User) (domain.Identity, error) {
	role, err := domain.ToRole(u.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("domain.ToRole[%s]: %w", u.Role, err)
	}

	return domain.Identity{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         role,
		CreatedAt:    u.CreatedAt,
	}, nil
}
