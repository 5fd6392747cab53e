package auth

import (
	"fmt"
	"strings"
	"time"

	"tobacco-auction/internal/config"
	"tobacco-auction/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// AccessTokenClaims is the JWT issued to marketplace users.
type AccessTokenClaims struct {
	UserID      int64       `json:"user_id"`
	DisplayName string      `json:"name"`
	Role        models.Role `json:"role"`
	jwt.RegisteredClaims
}

// User converts the claims into the caller identity handed to services.
func (c *AccessTokenClaims) User() models.User {
	return models.User{ID: c.UserID, DisplayName: c.DisplayName, Role: models.ParseRole(string(c.Role))}
}

// MintAccessToken issues a signed JWT for user using the configured TTL.
func MintAccessToken(cfg config.JWTConfig, now time.Time, user models.User) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.ExpirationMinutes <= 0 {
		return "", fmt.Errorf("jwt expiration minutes must be positive")
	}
	if user.ID <= 0 {
		return "", fmt.Errorf("user id must be positive")
	}
	if !user.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", user.Role)
	}

	claims := AccessTokenClaims{
		UserID:      user.ID,
		DisplayName: strings.TrimSpace(user.DisplayName),
		Role:        user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL())),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the JWT string and returns typed claims.
func ParseAccessToken(cfg config.JWTConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return nil, err
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("token has no user id")
	}
	return claims, nil
}
