// Package auth issues and validates the HS256 bearer tokens that guard the
// parse log endpoints.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paynlp/internal/config"
	"paynlp/internal/domain"
)

// Audience is the only audience accepted by the API.
const Audience = "parse-logs"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.RegisteredClaims, error)
}

// TokenService signs and validates tokens with a shared secret.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService from auth config.
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}
}

// IssueToken signs a token for subject that expires after ttl.
func (s *TokenService) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and checks signature, expiry, issuer and audience.
func (s *TokenService) ValidateToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w: %w", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
