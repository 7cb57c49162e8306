package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of tokens minted by cmd/seed.
const DefaultTTL = 30 * 24 * time.Hour

// Claims identifies the staff member behind a dashboard request.
// It carries a display name only; it grants nothing.
type Claims struct {
	StaffName string `json:"staff_name"`
	jwt.RegisteredClaims
}

func GenerateToken(secret, staffName string, ttl time.Duration) (string, error) {
	staffName = strings.TrimSpace(staffName)
	if staffName == "" {
		return "", errors.New("staff name is required")
	}
	now := time.Now()
	claims := Claims{
		StaffName: staffName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffName,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.StaffName == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
