// Package security verifies the bearer tokens issued by the external
// identity provider and carries the authenticated principal through requests.
package security

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mealwise/core/internal/infrastructure/config"
	"go.uber.org/zap"
)

var (
	// ErrMissingToken is returned when a request carries no bearer token
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned for tokens that fail verification
	ErrInvalidToken = errors.New("invalid token")
	// ErrVerifierDisabled is returned when no signing secret is configured
	ErrVerifierDisabled = errors.New("token verification is not configured")
)

// Principal is the authenticated caller
type Principal struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the principal carries role
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// TokenVerifier validates HS256 access tokens
type TokenVerifier struct {
	secret     []byte
	parser     *jwt.Parser
	rolesClaim string
	logger     *zap.Logger
}

// NewTokenVerifier creates a verifier from auth configuration. Without a
// secret every token is rejected.
func NewTokenVerifier(cfg config.AuthConfig, logger *zap.Logger) *TokenVerifier {
	logger = logger.Named("token-verifier")

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(cfg.ClockSkew),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	rolesClaim := cfg.RolesClaim
	if rolesClaim == "" {
		rolesClaim = "roles"
	}

	if cfg.JWTSecret == "" {
		logger.Warn("No JWT secret configured, all authenticated routes will reject requests")
	}

	return &TokenVerifier{
		secret:     []byte(cfg.JWTSecret),
		parser:     jwt.NewParser(opts...),
		rolesClaim: rolesClaim,
		logger:     logger,
	}
}

// Verify parses and validates a raw token and returns its principal
func (v *TokenVerifier) Verify(raw string) (Principal, error) {
	if len(v.secret) == 0 {
		return Principal{}, ErrVerifierDisabled
	}
	if raw == "" {
		return Principal{}, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Principal{
		UserID: subject,
		Roles:  rolesFrom(claims[v.rolesClaim]),
	}, nil
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// rolesFrom accepts either a JSON array of strings or a space separated string
func rolesFrom(value any) []string {
	switch roles := value.(type) {
	case []any:
		out := make([]string, 0, len(roles))
		for _, role := range roles {
			if s, ok := role.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Fields(roles)
	default:
		return nil
	}
}

type principalKey struct{}

// WithPrincipal returns a context carrying the principal
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
