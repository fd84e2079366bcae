package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestHashPassword_RoundTrip(t *testing.T) {
	for _, p := range []string{"Passw0rd!", "Short1!x", "ünïcødé-Pässwörd!"} {
		hash, err := HashPassword(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash, "hash must not be the plaintext")

		ok, err := VerifyPassword(p, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q must verify against its own hash", p)
	}
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	h1, err := HashPassword("Passw0rd!")
	require.NoError(t, err)
	h2, err := HashPassword("Passw0rd!")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("Passw0rd!")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong", hash)
	require.NoError(t, err, "a wrong password is not an error")
	assert.False(t, ok)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("Passw0rd!", "not-a-bcrypt-hash")
	require.Error(t, err)
	assert.False(t, ok)
}
