// Package auth issues and verifies the HS256 access tokens that carry a
// caller's identity. The identity is trusted as-is: there is no user
// database behind it.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller.
type Identity struct {
	OwnerID string
	Email   string
}

// Claims are the registered claims plus the profile owner's identity.
type Claims struct {
	jwt.RegisteredClaims
	OwnerID string `json:"oid"`
	Email   string `json:"email"`
}

// GenerateToken signs a token for id that expires after validityDuration.
func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.OwnerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		OwnerID: id.OwnerID,
		Email:   id.Email,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields an error wrapping common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.OwnerID == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{OwnerID: claims.OwnerID, Email: claims.Email}, nil
}
