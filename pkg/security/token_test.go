package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	verifier := NewStaticVerifier("valid-token-example")

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "exact match",
			token:   "valid-token-example",
			wantErr: false,
		},
		{
			name:    "wrong token",
			token:   "some-other-token",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
		{
			name:    "prefix of the literal",
			token:   "valid-token",
			wantErr: true,
		},
		{
			name:    "literal plus suffix",
			token:   "valid-token-example-2",
			wantErr: true,
		},
		{
			name:    "case differs",
			token:   "Valid-Token-Example",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verifier.Verify(context.Background(), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func mintToken(t *testing.T, key, issuer string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestJWTVerifier(t *testing.T) {
	const (
		signKey = "test-sign-key"
		issuer  = "user-rest-service"
	)
	verifier := NewJWTVerifier(signKey, issuer)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		token := mintToken(t, signKey, issuer, time.Hour)
		assert.NoError(t, verifier.Verify(ctx, token))
	})

	t.Run("expired token", func(t *testing.T) {
		token := mintToken(t, signKey, issuer, -time.Minute)
		assert.Error(t, verifier.Verify(ctx, token))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := mintToken(t, signKey, "someone-else", time.Hour)
		assert.Error(t, verifier.Verify(ctx, token))
	})

	t.Run("wrong sign key", func(t *testing.T) {
		token := mintToken(t, "other-key", issuer, time.Hour)
		assert.Error(t, verifier.Verify(ctx, token))
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		claims := &jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		assert.Error(t, verifier.Verify(ctx, token))
	})

	t.Run("missing expiry rejected", func(t *testing.T) {
		claims := &jwt.RegisteredClaims{Issuer: issuer}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
		require.NoError(t, err)

		assert.Error(t, verifier.Verify(ctx, token))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Error(t, verifier.Verify(ctx, "not-a-jwt"))
	})
}

func TestNewVerifier(t *testing.T) {
	t.Run("static mode", func(t *testing.T) {
		v, err := NewVerifier(Config{Mode: ModeStatic, Token: "secret"})
		require.NoError(t, err)
		assert.IsType(t, &StaticVerifier{}, v)
	})

	t.Run("empty mode defaults to static", func(t *testing.T) {
		v, err := NewVerifier(Config{Token: "secret"})
		require.NoError(t, err)
		assert.IsType(t, &StaticVerifier{}, v)
	})

	t.Run("jwt mode", func(t *testing.T) {
		v, err := NewVerifier(Config{Mode: ModeJWT, JWTSignKey: "key", JWTIssuer: "iss"})
		require.NoError(t, err)
		assert.IsType(t, &JWTVerifier{}, v)
	})

	t.Run("unknown mode", func(t *testing.T) {
		v, err := NewVerifier(Config{Mode: "oauth"})
		assert.Error(t, err)
		assert.Nil(t, v)
	})
}
