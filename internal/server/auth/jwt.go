// Package auth issues and validates the stateless session tokens that
// identify a caller on every authenticated request. Tokens are HS256 JWTs
// carrying subject (user id), issued-at and expiry; expiry is the only
// revocation mechanism.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the session claims embedded in an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken produces a signed access token for userID, valid for
// validityDuration starting now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry of tokenString and
// returns the user id from the subject claim.
//
// Expired tokens yield common.ErrTokenExpired; malformed tokens, wrong
// signatures and tokens signed with an unexpected method yield
// common.ErrInvalidToken. Both collapse to "unauthorized" at the HTTP
// boundary but stay distinct for logging.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
