package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the identity available when minting a JWT.
type AccessTokenPayload struct {
	Email string
	Name  string
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients. Email is the
// verified owner key every ownership check compares against.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
