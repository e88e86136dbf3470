package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=4$"))
	assert.NotContains(t, hash, "secret123")

	other, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salts must differ")
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrongpass")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = VerifyPassword(hash, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordUsesStoredParameters(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("changeme"), salt, 2, 19*1024, 1, 24)
	encoded := fmt.Sprintf("$argon2id$v=19$m=%d,t=2,p=1$%s$%s",
		19*1024,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	ok, err := VerifyPassword(encoded, "changeme")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA",
		"$argon2id$v=16$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	} {
		ok, err := VerifyPassword(encoded, "x")
		assert.Error(t, err, encoded)
		assert.False(t, ok)
	}
}

func TestVerifyPasswordRejectsOutOfRangeParameters(t *testing.T) {
	salt := base64.RawStdEncoding.EncodeToString([]byte("0123456789abcdef"))
	key := base64.RawStdEncoding.EncodeToString(make([]byte, 32))

	for _, params := range []string{
		"m=65536,t=0,p=4",
		"m=65536,t=3,p=0",
		"m=65536,t=1000,p=4",
		"m=4194304,t=3,p=4",
		"m=16,t=3,p=4",
	} {
		encoded := "$argon2id$v=19$" + params + "$" + salt + "$" + key
		var ok bool
		var err error
		assert.NotPanics(t, func() { ok, err = VerifyPassword(encoded, "x") }, params)
		assert.ErrorIs(t, err, errMalformedHash, params)
		assert.False(t, ok)
	}

	short := "$argon2id$v=19$m=65536,t=3,p=4$" + salt + "$" + base64.RawStdEncoding.EncodeToString([]byte("tiny"))
	_, err := VerifyPassword(short, "x")
	assert.ErrorIs(t, err, errMalformedHash)
}
