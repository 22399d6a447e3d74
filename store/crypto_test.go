package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCipher_RoundTrip(t *testing.T) {
	cipher, err := NewTokenCipher("operator-secret")
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("MTA5.bot.token")
	require.NoError(t, err)
	assert.NotEqual(t, "MTA5.bot.token", encrypted)

	decrypted, err := cipher.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "MTA5.bot.token", decrypted)
}

func TestTokenCipher_EmptyStringPassthrough(t *testing.T) {
	cipher, err := NewTokenCipher("operator-secret")
	require.NoError(t, err)

	encrypted, err := cipher.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", encrypted)

	decrypted, err := cipher.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", decrypted)
}

func TestTokenCipher_WrongKeyFails(t *testing.T) {
	cipher1, err := NewTokenCipher("key-one")
	require.NoError(t, err)
	cipher2, err := NewTokenCipher("key-two")
	require.NoError(t, err)

	encrypted, err := cipher1.Encrypt("secret-token")
	require.NoError(t, err)

	_, err = cipher2.Decrypt(encrypted)
	assert.Error(t, err)
}

func TestTokenCipher_GarbageInputFails(t *testing.T) {
	cipher, err := NewTokenCipher("operator-secret")
	require.NoError(t, err)

	_, err = cipher.Decrypt("not base64 at all!!!")
	assert.Error(t, err)

	_, err = cipher.Decrypt("YWJj") // valid base64, too short for a nonce
	assert.Error(t, err)
}
