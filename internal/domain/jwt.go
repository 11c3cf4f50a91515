package domain

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the claims of the first-party admin session token issued
// after Firebase sign-in. There is no role model beyond authenticated-or-not.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
