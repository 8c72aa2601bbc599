package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator verifies the bearer tokens the FinTalk API issues for signed-in
// viewers. GenerateToken mints a compatible token, used by local tooling and
// tests.
type Authenticator interface {
	GenerateToken(userID int64) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}
