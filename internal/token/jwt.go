package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/model"
)

// Default lifetimes per scope.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
	DefaultEmailTTL   = 24 * time.Hour
)

var _ model.TokenCodec = (*JWT)(nil)

// Claims is the single claim set shared by every token kind. Scope is the
// only thing telling an access token from a refresh or email token.
type Claims struct {
	jwt.RegisteredClaims
	Scope model.Scope `json:"scope"`
}

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       map[model.Scope]time.Duration
	now       func() time.Time
}

// Option configures a JWT codec.
type Option func(*JWT)

// WithTTL overrides the default lifetime for scope.
func WithTTL(scope model.Scope, ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.ttl[scope] = ttl
		}
	}
}

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT codec with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey: []byte(secretKey),
		ttl: map[model.Scope]time.Duration{
			model.ScopeAccess:      DefaultAccessTTL,
			model.ScopeRefresh:     DefaultRefreshTTL,
			model.ScopeEmailVerify: DefaultEmailTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs a token for subject with the given scope that expires after ttl.
func (j *JWT) Issue(scope model.Scope, subject string, ttl time.Duration) (string, error) {
	if !scope.Valid() {
		return "", fmt.Errorf("failed to issue token: unknown scope %q", scope)
	}
	if subject == "" {
		return "", fmt.Errorf("failed to issue token: empty subject")
	}

	// iat and exp are serialized at jwt.TimePrecision; expiry is measured
	// against the serialized instants.
	now := j.now().Truncate(jwt.TimePrecision)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: scope,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", scope, err)
	}

	return tokenString, nil
}

// IssueDefault signs a token using the configured lifetime of scope.
func (j *JWT) IssueDefault(scope model.Scope, subject string) (string, error) {
	return j.Issue(scope, subject, j.ttl[scope])
}

// Decode validates signature and expiry and returns the claims.
//
// Failures are reported as model.ErrTokenInvalidSignature, model.ErrTokenExpired
// or model.ErrTokenMalformed.
func (j *JWT) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" || claims.IssuedAt == nil || !claims.Scope.Valid() {
		return nil, model.ErrTokenMalformed
	}

	return claims, nil
}

// DecodeWithScope decodes tokenString and returns its subject if the token
// carries the expected scope.
func (j *JWT) DecodeWithScope(tokenString string, expected model.Scope) (string, error) {
	claims, err := j.Decode(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != expected {
		return "", fmt.Errorf("%w: got %s, want %s", model.ErrTokenWrongScope, claims.Scope, expected)
	}
	return claims.Subject, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", model.ErrTokenInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", model.ErrTokenMalformed, err)
	}
}
