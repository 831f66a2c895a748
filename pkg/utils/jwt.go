package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// Claims mirrors the flat payload the backend signs into its session token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// PeekClaims decodes a backend token WITHOUT verifying its signature. The
// client holds no signing key; verification stays server-side. The claims are
// used only as a session hint when a login or restore response omits the user
// object (older backend versions return just the token).
func PeekClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	if claims.Username == "" || claims.Role == "" {
		return nil, fmt.Errorf("token missing identity claims")
	}
	return claims, nil
}
