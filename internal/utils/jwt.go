package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/pickupkart/internal/models"
)

// Token verification failures, ordered from most to least specific.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("token invalid")
)

// TokenClaims is the payload embedded in issued tokens. The role claim is
// advisory only; authorization re-resolves the current role from the store.
type TokenClaims struct {
	UserID string          `json:"user_id"`
	Role   models.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT carrying the user ID and role.
func GenerateToken(secret string, userID uuid.UUID, role models.RoleName, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: userID.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns its claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if _, err := uuid.Parse(claims.UserID); err != nil {
			return nil, ErrTokenInvalid
		}
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// SubjectID returns the user ID carried in the claims.
func (c *TokenClaims) SubjectID() uuid.UUID {
	id, _ := uuid.Parse(c.UserID)
	return id
}
