package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/helpers/apperr"
)

// JWTProvider verifies HMAC-signed access tokens carrying id/sub/user_id and
// role claims.
type JWTProvider struct {
	secret []byte
	skew   time.Duration
	now    func() time.Time
}

type JWTOption func(*JWTProvider)

// WithClockSkew tolerates exp values that are at most d in the past.
func WithClockSkew(d time.Duration) JWTOption {
	return func(p *JWTProvider) { p.skew = d }
}

// WithClock overrides the time source used for exp checks and issuing.
func WithClock(now func() time.Time) JWTOption {
	return func(p *JWTProvider) { p.now = now }
}

func NewJWTProvider(secret string, opts ...JWTOption) (*JWTProvider, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("identity: jwt secret is required")
	}
	p := &JWTProvider{
		secret: []byte(secret),
		skew:   30 * time.Second,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *JWTProvider) Authenticate(_ context.Context, raw string) (Identity, error) {
	raw = strings.Trim(strings.TrimSpace(raw), "\"'")
	if raw == "" {
		return Identity{}, fmt.Errorf("%w: no token provided", apperr.ErrUnauthenticated)
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	}); err != nil {
		return Identity{}, fmt.Errorf("%w: token parse error: %v", apperr.ErrUnauthenticated, err)
	}

	if err := validateTokenExpiry(claims, p.now(), p.skew); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}

	id := firstStringClaim(claims, "id", "sub", "user_id")
	if id == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", apperr.ErrUnauthenticated)
	}
	role, _ := claims["role"].(string)
	role = strings.ToLower(strings.TrimSpace(role))
	if !constants.IsKnownRole(role) {
		return Identity{}, fmt.Errorf("%w: unknown role %q", apperr.ErrUnauthenticated, role)
	}
	return Identity{ID: id, Role: role}, nil
}

// Issue signs an HS256 token for who, valid for ttl.
func (p *JWTProvider) Issue(who Identity, ttl time.Duration) (string, error) {
	if who.IsZero() {
		return "", errors.New("identity: cannot issue a token without subject")
	}
	if !constants.IsKnownRole(who.Role) {
		return "", fmt.Errorf("identity: unknown role %q", who.Role)
	}
	now := p.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   who.ID,
		"role": who.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return tok.SignedString(p.secret)
}

func validateTokenExpiry(claims jwt.MapClaims, now time.Time, skew time.Duration) error {
	expVal, ok := claims["exp"]
	if !ok {
		return errors.New("token has no exp")
	}

	var expUnix int64
	switch t := expVal.(type) {
	case float64:
		expUnix = int64(t)
	case int64:
		expUnix = t
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return errors.New("invalid exp format")
		}
		expUnix = n
	default:
		return errors.New("invalid exp type")
	}

	expTime := time.Unix(expUnix, 0).UTC()
	if now.UTC().After(expTime.Add(skew)) {
		return fmt.Errorf("token expired at %v", expTime)
	}
	return nil
}

func firstStringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if s, ok := claims[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
