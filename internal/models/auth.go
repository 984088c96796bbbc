package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries the identity asserted by the external identity provider.
// This service only ever reads the id and email; it never issues tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
