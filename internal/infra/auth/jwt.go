// Package auth implements domain.AuthProvider with HS256 JSON Web Tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"learning-platform-service/internal/domain"
)

// ErrInvalidToken is returned for tokens that fail parsing or validation.
var ErrInvalidToken = errors.New("invalid or expired token")

// Config holds token settings.
type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Claims are the token claims. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider issues and verifies access tokens.
type JWTProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTProvider creates a token provider.
func NewJWTProvider(cfg Config) *JWTProvider {
	return &JWTProvider{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for the given user.
func (p *JWTProvider) Issue(userID, role string) (string, error) {
	now := p.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Authenticate verifies the token. An empty token is anonymous, not an error.
func (p *JWTProvider) Authenticate(_ context.Context, token string) (domain.AuthState, error) {
	if token == "" {
		return domain.Anonymous(), nil
	}

	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Anonymous(), fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if p.issuer != "" && !claims.VerifyIssuer(p.issuer, true) {
		return domain.Anonymous(), fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, claims.Issuer)
	}
	if claims.Subject == "" {
		return domain.Anonymous(), fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return domain.AuthState{
		IsAuthenticated: true,
		User:            &domain.AuthUser{ID: claims.Subject, Role: claims.Role},
	}, nil
}
