package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"outreach-backend/internal/config"
)

// JWTManager issues and verifies bearer tokens for the canonical staff API.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// Claims carried in a staff token. Team and role are included so middleware
// can gate admin routes without a profile lookup, but visibility decisions
// always re-read the live profile.
type Claims struct {
	UserID int    `json:"user_id"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Team   string `json:"team"`
	jwt.RegisteredClaims
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	expiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 72 * time.Hour
	}
	return &JWTManager{
		secret: []byte(cfg.JWT.Secret),
		expiry: expiry,
	}
}

// Generate creates a signed token for the given staff identity.
func (m *JWTManager) Generate(userID int, phone, role, team string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Phone:  phone,
		Role:   role,
		Team:   team,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
