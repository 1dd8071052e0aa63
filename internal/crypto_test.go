package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCodeVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("482913"), bcrypt.MinCost)
	require.NoError(t, err)
	v := NewCodeVerifier(hash)

	assert.True(t, v.Verify("482913"))
	assert.False(t, v.Verify("123456"))
	assert.False(t, v.Verify("48291"))
	assert.False(t, v.Verify(" 482913"))
}

func TestHashVerificationCode(t *testing.T) {
	hash, err := HashVerificationCode("000111")
	require.NoError(t, err)
	assert.True(t, NewCodeVerifier(hash).Verify("000111"))

	_, err = HashVerificationCode("12ab56")
	assert.Error(t, err)
}

func TestReadCodeHash(t *testing.T) {
	t.Run("default code", func(t *testing.T) {
		t.Setenv("STOREFRONT_CODE_HASH", "")
		hash, err := ReadCodeHash(t.TempDir())
		require.NoError(t, err)
		assert.True(t, NewCodeVerifier(hash).Verify(DefaultVerificationCode))
	})

	t.Run("file", func(t *testing.T) {
		t.Setenv("STOREFRONT_CODE_HASH", "")
		dir := t.TempDir()
		hash, err := bcrypt.GenerateFromPassword([]byte("654321"), bcrypt.MinCost)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "code.hash"), append(hash, '\n'), 0600))

		got, err := ReadCodeHash(dir)
		require.NoError(t, err)
		v := NewCodeVerifier(got)
		assert.True(t, v.Verify("654321"))
		assert.False(t, v.Verify(DefaultVerificationCode))
	})

	t.Run("env wins", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("111111"), bcrypt.MinCost)
		require.NoError(t, err)
		t.Setenv("STOREFRONT_CODE_HASH", string(hash))

		got, err := ReadCodeHash(t.TempDir())
		require.NoError(t, err)
		assert.True(t, NewCodeVerifier(got).Verify("111111"))
	})

	t.Run("malformed", func(t *testing.T) {
		t.Setenv("STOREFRONT_CODE_HASH", "not-a-hash")
		_, err := ReadCodeHash(t.TempDir())
		assert.Error(t, err)
	})
}
