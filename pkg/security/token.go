package security

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verification modes selectable through configuration.
const (
	ModeStatic = "static"
	ModeJWT    = "jwt"
)

// TokenVerifier checks the credential presented with a request. The auth
// stage treats it as a black box, so swapping implementations never changes
// the pipeline's control flow.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// Config selects and parameterizes a verifier.
type Config struct {
	Mode       string // static or jwt
	Token      string // accepted literal for static mode
	JWTSignKey string // HMAC key for jwt mode
	JWTIssuer  string // expected iss claim for jwt mode
}

// NewVerifier builds the verifier selected by cfg.Mode.
func NewVerifier(cfg Config) (TokenVerifier, error) {
	switch cfg.Mode {
	case ModeStatic, "":
		return NewStaticVerifier(cfg.Token), nil
	case ModeJWT:
		return NewJWTVerifier(cfg.JWTSignKey, cfg.JWTIssuer), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// StaticVerifier accepts exactly one configured literal.
type StaticVerifier struct {
	token []byte
}

// NewStaticVerifier creates a verifier for the given literal token.
func NewStaticVerifier(token string) *StaticVerifier {
	return &StaticVerifier{token: []byte(token)}
}

// Verify compares in constant time so the check leaks nothing about how much
// of the presented token matched.
func (v *StaticVerifier) Verify(_ context.Context, token string) error {
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return errors.New("token does not match")
	}
	return nil
}

// JWTVerifier validates HMAC-SHA256 signed tokens carrying registered
// claims.
type JWTVerifier struct {
	signKey []byte
	issuer  string
}

// NewJWTVerifier creates a verifier for tokens signed with signKey and
// issued by issuer.
func NewJWTVerifier(signKey, issuer string) *JWTVerifier {
	return &JWTVerifier{signKey: []byte(signKey), issuer: issuer}
}

// Verify checks the signature, signing method, issuer, and expiry of the
// presented token.
func (v *JWTVerifier) Verify(_ context.Context, token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return v.signKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	return nil
}
