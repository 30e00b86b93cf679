package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"

	"go-bars-app/internal/core/domain/bars"
)

func TestJWTVerifier(t *testing.T) {
	ctx := context.Background()
	v := NewJWTVerifier("test-secret")

	t.Run("round trip", func(t *testing.T) {
		token, err := v.Sign("user-123", time.Hour)
		require.NoError(t, err)

		sub, err := v.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", sub)
	})

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-token" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := NewJWTVerifier("other").Sign("user-123", time.Hour)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := v.Sign("user-123", -time.Minute)
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-123"}).
					SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "no subject",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "wrong algorithm",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
					Subject:   "user-123",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}).SignedString([]byte("test-secret"))
				require.NoError(t, err)
				return tok
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(ctx, tt.token(t))
			assert.ErrorIs(t, err, bars.ErrUnauthenticated)
		})
	}

	t.Run("empty subject cannot be signed", func(t *testing.T) {
		_, err := v.Sign("", time.Hour)
		assert.Error(t, err)
	})
}

func TestGoogleVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		v := &GoogleVerifier{
			audience: "client-id",
			validate: func(_ context.Context, token, aud string) (*idtoken.Payload, error) {
				assert.Equal(t, "google-token", token)
				assert.Equal(t, "client-id", aud)
				return &idtoken.Payload{Subject: "google-sub"}, nil
			},
		}

		sub, err := v.Verify(ctx, "google-token")
		require.NoError(t, err)
		assert.Equal(t, "google-sub", sub)
	})

	t.Run("rejected token", func(t *testing.T) {
		v := &GoogleVerifier{
			audience: "client-id",
			validate: func(context.Context, string, string) (*idtoken.Payload, error) {
				return nil, errors.New("idtoken: audience provided does not match aud claim")
			},
		}

		_, err := v.Verify(ctx, "google-token")
		assert.ErrorIs(t, err, bars.ErrUnauthenticated)
	})
}

type stubVerifier struct {
	sub string
	err error
}

func (s stubVerifier) Verify(context.Context, string) (string, error) { return s.sub, s.err }

func TestChain(t *testing.T) {
	ctx := context.Background()
	reject := stubVerifier{err: bars.ErrUnauthenticated}

	sub, err := Chain{reject, nil, stubVerifier{sub: "second"}}.Verify(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "second", sub)

	_, err = Chain{reject, reject}.Verify(ctx, "tok")
	assert.ErrorIs(t, err, bars.ErrUnauthenticated)

	_, err = Chain{stubVerifier{sub: "x"}}.Verify(ctx, "")
	assert.ErrorIs(t, err, bars.ErrUnauthenticated)

	_, err = Chain{}.Verify(ctx, "tok")
	assert.ErrorIs(t, err, bars.ErrUnauthenticated)
}
