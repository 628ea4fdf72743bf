package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-admin/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestParseVerified(t *testing.T) {
	token := sign(t, "s3cret", jwt.MapClaims{"id": 42, "exp": time.Now().Add(time.Hour).Unix()})

	sess, err := NewParser("s3cret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, sess.UserID)
	assert.Equal(t, token, sess.AccessToken)

	_, err = NewParser("other").Parse(token)
	require.Error(t, err)
	assert.True(t, errs.IsInvalidTokenError(err))
	assert.True(t, IsUnauthenticated(err))
}

func TestParseExpired(t *testing.T) {
	token := sign(t, "s3cret", jwt.MapClaims{"id": 1, "exp": time.Now().Add(-time.Hour).Unix()})
	_, err := NewParser("s3cret").Parse(token)
	assert.True(t, errs.IsInvalidTokenError(err))
}

func TestParseUnverified(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   int
	}{
		{"numeric id", jwt.MapClaims{"id": 7}, 7},
		{"string user_id", jwt.MapClaims{"user_id": "12"}, 12},
		{"subject", jwt.MapClaims{"sub": "5"}, 5},
		{"no user", jwt.MapClaims{"email": "ops@example.com"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := NewParser("").Parse(sign(t, "whatever", tt.claims))
			require.NoError(t, err)
			assert.Equal(t, tt.want, sess.UserID)
		})
	}
}

func TestParseOpaqueAndMissing(t *testing.T) {
	sess, err := NewParser("").Parse("opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", sess.AccessToken)
	assert.Zero(t, sess.UserID)

	_, err = NewParser("").Parse("")
	assert.True(t, errs.IsMissingTokenError(err))
}

func TestRequireUserID(t *testing.T) {
	_, err := Session{AccessToken: "x"}.RequireUserID()
	require.Error(t, err)
	assert.Equal(t, "User ID not found in session", errs.MessageOr(err, "fallback"))

	id, err := Session{UserID: 3}.RequireUserID()
	require.NoError(t, err)
	assert.Equal(t, 3, id)
}
