package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15, 72)

	token, err := m.GenerateAccessToken("user-1", "reader@example.com", "reader", "member")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	m := NewManager("test-secret", 15, 72)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15, 72)
	other := NewManager("secret-b", 15, 72)

	token, err := m.GenerateAccessToken("user-1", "reader@example.com", "reader", "member")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
