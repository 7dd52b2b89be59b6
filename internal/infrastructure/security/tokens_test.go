package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mealwise/core/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-secret-key-for-testing-only-32-bytes"

// TokenVerifierTestSuite provides a test suite for TokenVerifier
type TokenVerifierTestSuite struct {
	suite.Suite
	verifier *TokenVerifier
}

func TestTokenVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(TokenVerifierTestSuite))
}

func (suite *TokenVerifierTestSuite) SetupTest() {
	suite.verifier = NewTokenVerifier(config.AuthConfig{
		JWTSecret:  testSecret,
		Issuer:     "https://id.example.com",
		Audience:   "mealwise-api",
		ClockSkew:  time.Second,
		RolesClaim: "roles",
	}, zaptest.NewLogger(suite.T()))
}

func (suite *TokenVerifierTestSuite) sign(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(suite.T(), err)
	return token
}

func (suite *TokenVerifierTestSuite) validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-123",
		"iss":   "https://id.example.com",
		"aud":   "mealwise-api",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"roles": []string{"member", "admin"},
	}
}

func (suite *TokenVerifierTestSuite) TestVerify() {
	suite.Run("ValidToken_ReturnsPrincipal", func() {
		token := suite.sign(jwt.SigningMethodHS256, []byte(testSecret), suite.validClaims())

		principal, err := suite.verifier.Verify(token)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "user-123", principal.UserID)
		assert.Equal(suite.T(), []string{"member", "admin"}, principal.Roles)
		assert.True(suite.T(), principal.HasRole("admin"))
	})

	suite.Run("SpaceSeparatedRoles", func() {
		claims := suite.validClaims()
		claims["roles"] = "member admin"
		token := suite.sign(jwt.SigningMethodHS256, []byte(testSecret), claims)

		principal, err := suite.verifier.Verify(token)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"member", "admin"}, principal.Roles)
	})

	suite.Run("EmptyToken_Missing", func() {
		_, err := suite.verifier.Verify("")
		assert.ErrorIs(suite.T(), err, ErrMissingToken)
	})

	cases := []struct {
		name   string
		mutate func(jwt.MapClaims)
	}{
		{"Expired", func(c jwt.MapClaims) { c["exp"] = time.Now().Add(-time.Hour).Unix() }},
		{"NoExpiry", func(c jwt.MapClaims) { delete(c, "exp") }},
		{"WrongIssuer", func(c jwt.MapClaims) { c["iss"] = "https://evil.example.com" }},
		{"WrongAudience", func(c jwt.MapClaims) { c["aud"] = "other-api" }},
		{"NoSubject", func(c jwt.MapClaims) { delete(c, "sub") }},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			claims := suite.validClaims()
			tc.mutate(claims)
			token := suite.sign(jwt.SigningMethodHS256, []byte(testSecret), claims)

			_, err := suite.verifier.Verify(token)
			assert.ErrorIs(suite.T(), err, ErrInvalidToken)
		})
	}

	suite.Run("WrongSecret", func() {
		token := suite.sign(jwt.SigningMethodHS256, []byte("another-secret"), suite.validClaims())
		_, err := suite.verifier.Verify(token)
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})

	suite.Run("OtherHMACAlgorithmRejected", func() {
		token := suite.sign(jwt.SigningMethodHS512, []byte(testSecret), suite.validClaims())
		_, err := suite.verifier.Verify(token)
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})

	suite.Run("Garbage", func() {
		_, err := suite.verifier.Verify("invalid.jwt.token")
		assert.ErrorIs(suite.T(), err, ErrInvalidToken)
	})
}

func TestTokenVerifier_NoSecret(t *testing.T) {
	verifier := NewTokenVerifier(config.AuthConfig{}, zaptest.NewLogger(t))

	_, err := verifier.Verify("anything")
	assert.ErrorIs(t, err, ErrVerifierDisabled)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken("abc"))
	assert.Empty(t, BearerToken(""))
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{UserID: "u1"})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
}
