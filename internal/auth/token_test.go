package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	t.Run("issue then parse round-trips the claims", func(t *testing.T) {
		token, err := tm.Issue("user-1", RoleAdmin)
		require.NoError(t, err)

		claims, err := tm.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, err := tm.Issue("user-1", RoleCustomer)
		require.NoError(t, err)

		other := NewTokenManager("different", time.Hour)
		_, err = other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		past := NewTokenManager("secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Issue("user-1", RoleCustomer)
		require.NoError(t, err)

		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := tm.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
