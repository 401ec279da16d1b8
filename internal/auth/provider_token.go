package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ProviderIdentity is the subset of the identity provider's token the
// backend trusts: who the principal is, nothing about what they may do.
type ProviderIdentity struct {
	Subject string
	Email   string
	Name    string
}

// ParseProviderToken validates a provider-issued HS256 JWT and extracts the
// principal. Authorization (role, position) always comes from our own user
// row, never from the token.
func ParseProviderToken(secret []byte, tokenString string) (*ProviderIdentity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	identity := &ProviderIdentity{}
	if sub, ok := (*claims)["sub"].(string); ok {
		identity.Subject = sub
	}
	if email, ok := (*claims)["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := (*claims)["name"].(string); ok {
		identity.Name = name
	}

	if identity.Email == "" {
		return nil, errors.New("token missing email claim")
	}

	return identity, nil
}
