package testutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TestJWTSecret is the signing secret test configurations share
const TestJWTSecret = "test-secret-key-for-testing-only-32-bytes"

// SignToken issues an HS256 access token for userID valid for one hour
func SignToken(t *testing.T, secret, userID string, roles ...string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
