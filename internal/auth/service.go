package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// Registration is a register request as submitted by the client.
type Registration struct {
	Name      string
	Email     string
	Password  string
	Role      string
	SecretKey string
}

// Service registers and logs in users, issuing session tokens.
type Service struct {
	users       port.UserRepository
	tokens      *TokenService
	hasher      Hasher
	adminSecret string

	// compared against when the email is unknown so both paths cost a bcrypt run
	dummyHash string
}

func NewService(users port.UserRepository, tokens *TokenService, hasher Hasher, adminSecret string) (*Service, error) {
	if users == nil {
		return nil, errors.New("users is nil")
	}
	if tokens == nil {
		return nil, errors.New("tokens is nil")
	}

	dummyHash, err := hasher.Hash("storefront-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("hasher.Hash: %w", err)
	}

	return &Service{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		adminSecret: adminSecret,
		dummyHash:   dummyHash,
	}, nil
}

func (s *Service) Register(ctx context.Context, reg Registration) (domain.Session, error) {
	var session domain.Session

	name := strings.TrimSpace(reg.Name)
	email := domain.NormalizeEmail(reg.Email)

	var invalid []string
	if name == "" {
		invalid = append(invalid, "name")
	}
	if email == "" {
		invalid = append(invalid, "email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		invalid = append(invalid, "email")
	}
	if reg.Password == "" {
		invalid = append(invalid, "password")
	}

	role, err := domain.ToRole(reg.Role)
	if err != nil {
		invalid = append(invalid, "role")
	}

	if len(invalid) > 0 {
		return session, domain.NewValidationError(invalid...)
	}

	if role == domain.RoleAdmin && !s.adminSecretMatches(reg.SecretKey) {
		return session, domain.ErrInvalidAdminSecret
	}

	_, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return session, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return session, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	hash, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return session, fmt.Errorf("hasher.Hash: %w", err)
	}

	// the unique index still guards against a concurrent registration
	identity, err := s.users.CreateUser(ctx, domain.Identity{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return session, fmt.Errorf("users.CreateUser: %w", err)
	}

	slog.InfoContext(ctx, "user registered",
		"method", "Service.Register",
		"user_id", identity.ID,
		"role", identity.Role)

	return s.session(identity)
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.Session, error) {
	var session domain.Session

	email = domain.NormalizeEmail(email)

	var invalid []string
	if email == "" {
		invalid = append(invalid, "email")
	}
	if password == "" {
		invalid = append(invalid, "password")
	}
	if len(invalid) > 0 {
		return session, domain.NewValidationError(invalid...)
	}

	identity, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Matches(s.dummyHash, password)
			return session, domain.ErrInvalidCredentials
		}
		return session, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if !s.hasher.Matches(identity.PasswordHash, password) {
		return session, domain.ErrInvalidCredentials
	}

	return s.session(identity)
}

func (s *Service) session(identity domain.Identity) (domain.Session, error) {
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return domain.Session{}, fmt.Errorf("tokens.Issue: %w", err)
	}

	return domain.Session{
		Token:    token,
		Identity: identity,
	}, nil
}

func (s *Service) adminSecretMatches(secretKey string) bool {
	if s.adminSecret == "" || secretKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secretKey), []byte(s.adminSecret)) == 1
}
