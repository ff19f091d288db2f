package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicPerSalt(t *testing.T) {
	k1 := DeriveKey([]byte("123456"), []byte("salt-a"))
	k2 := DeriveKey([]byte("123456"), []byte("salt-a"))
	k3 := DeriveKey([]byte("123456"), []byte("salt-b"))

	require.Len(t, k1, argonKeyLen)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestMakeVerifier_IsSHA256Sized(t *testing.T) {
	v := MakeVerifier([]byte("key"))
	assert.Len(t, v, 32)
	assert.NotEqual(t, []byte("key"), v)
}

func TestHashPassword_RoundTrip(t *testing.T) {
	salt, verifier := HashPassword([]byte("123456"))

	require.Len(t, salt, SaltSize)
	assert.True(t, CheckPassword([]byte("123456"), salt, verifier))
	assert.False(t, CheckPassword([]byte("654321"), salt, verifier))
	assert.False(t, CheckPassword([]byte("123456"), []byte("other salt"), verifier))
}

func TestHashPassword_FreshSaltEachTime(t *testing.T) {
	s1, v1 := HashPassword([]byte("secret"))
	s2, v2 := HashPassword([]byte("secret"))

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, v1, v2)
}

func TestCheckPassword_EmptyVerifier(t *testing.T) {
	assert.False(t, CheckPassword([]byte("x"), []byte("s"), nil))
}
