package service

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/orzutravel/api/internal/domain"
)

// FirebaseAuthClient defines the interface for Firebase Auth operations
// This allows mocking for tests
type FirebaseAuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

const adminTokenExpiry = 24 * time.Hour

// AuthService exchanges a verified Firebase sign-in for a first-party admin
// session token. Any Firebase account of the project counts as an admin;
// there is no finer role model.
type AuthService struct {
	authClient FirebaseAuthClient
	jwtSecret  string
}

// NewAuthService creates a new auth service
func NewAuthService(authClient FirebaseAuthClient, jwtSecret string) *AuthService {
	return &AuthService{
		authClient: authClient,
		jwtSecret:  jwtSecret,
	}
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresIn int64  `json:"expires_in"` // Seconds until the token expires
}

// Login verifies the Firebase ID token and issues a 24h HS256 session token.
func (s *AuthService) Login(ctx context.Context, firebaseToken string) (*LoginResponse, error) {
	token, err := s.authClient.VerifyIDToken(ctx, firebaseToken)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	email, _ := token.Claims["email"].(string)

	claims := domain.AdminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   token.UID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(adminTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &LoginResponse{
		Token:     signed,
		Email:     email,
		ExpiresIn: int64(adminTokenExpiry.Seconds()),
	}, nil
}
