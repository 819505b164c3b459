package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

const DefaultTokenTTL = 24 * time.Hour

type sessionClaims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

func WithTokenTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("signing secret is empty")
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *TokenService) Issue(identity domain.Identity) (string, error) {
	if identity.ID == uuid.Nil {
		return "", errors.New("identity id is empty")
	}

	now := s.now()

	claims := sessionClaims{
		UserID:  identity.ID.String(),
		Email:   identity.Email,
		IsAdmin: identity.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, nil
}

// Verify checks signature, algorithm and expiry. It never touches persistence.
func (s *TokenService) Verify(token string) (domain.Claims, error) {
	var c domain.Claims

	token = strings.TrimSpace(token)
	if token == "" {
		return c, domain.ErrInvalidToken
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return c, fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
		}
		return c, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	// a correctly signed token must still carry the identity
	if claims.UserID == "" {
		return c, fmt.Errorf("%w: userId claim is missing", domain.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil || userID == uuid.Nil {
		return c, fmt.Errorf("%w: userId claim is malformed", domain.ErrInvalidToken)
	}

	return domain.Claims{
		UserID:    userID,
		Email:     claims.Email,
		Role:      domain.RoleFromAdminFlag(claims.IsAdmin),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
