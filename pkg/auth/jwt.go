// Package auth validates bearer tokens and resolves them into principal
// claims. Token issuance belongs to the identity collaborator; this package
// only verifies and decodes.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the principal fields carried in an access token.
type Claims struct {
	PrincipalID  uuid.UUID `json:"principal_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	HomeCountry  string    `json:"home_country,omitempty"`
	Capabilities []string  `json:"capabilities,omitempty"`
	jwt.RegisteredClaims
}

// TokenService validates access tokens.
type TokenService interface {
	ValidateToken(token string) (*Claims, error)
	GenerateToken(claims *Claims, ttl time.Duration) (string, error)
}

type jwtService struct {
	secret []byte
}

func NewJWTService(secret string) TokenService {
	return &jwtService{secret: []byte(secret)}
}

func (s *jwtService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.PrincipalID == uuid.Nil {
		return nil, fmt.Errorf("token missing principal id")
	}
	return claims, nil
}

func (s *jwtService) GenerateToken(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
