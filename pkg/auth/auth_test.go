package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACKeyRoundTrip(t *testing.T) {
	t.Setenv("API_MASTER_SECRET", "test-secret")

	key := GenerateHMACKey("acme")
	name, err := VerifyHMACKey(key)
	require.NoError(t, err)
	assert.Equal(t, "acme", name)
}

func TestVerifyHMACKeyRejectsTampering(t *testing.T) {
	t.Setenv("API_MASTER_SECRET", "test-secret")

	key := GenerateHMACKey("acme")
	_, err := VerifyHMACKey("evil" + key[4:])
	assert.Error(t, err)

	_, err = VerifyHMACKey("not-a-key")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken("admin")
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := VerifyToken("garbage.token.value")
	assert.Error(t, err)
}
