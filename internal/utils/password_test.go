package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.NotContains(t, hash, "secret1")
	assert.NoError(t, CheckPassword(hash, "secret1"))
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.ErrorIs(t, CheckPassword(hash, "secret2"), ErrPasswordMismatch)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-bcrypt-hash", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
