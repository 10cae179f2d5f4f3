package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const subjectClaim = "board-owner"

// TokenManager mints and validates the bearer tokens guarding the API.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

func (m *TokenManager) Generate() (string, error) {
	claims := jwt.MapClaims{
		"sub": subjectClaim,
		"exp": time.Now().Add(m.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Parse(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	if sub, _ := claims["sub"].(string); sub != subjectClaim {
		return errors.New("invalid token subject")
	}
	return nil
}
