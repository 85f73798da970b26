package lib

import (
	"encoding/base64"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedTestHash(salt, hash []byte) string {
	return fmt.Sprintf("$argon2id$v=19$m=65536,t=1,p=4$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
}

func TestDecodeArgon2Hash(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(i)
	}

	parts, err := DecodeArgon2Hash(encodedTestHash(salt, hash))
	require.NoError(t, err)

	assert.Equal(t, uint32(65536), parts.Memory)
	assert.Equal(t, uint32(1), parts.Time)
	assert.Equal(t, uint8(4), parts.Threads)
	assert.Equal(t, uint32(32), parts.KeyLen)
	assert.Equal(t, salt, parts.Salt)
	assert.Equal(t, hash, parts.Hash)
}

func TestDecodeArgon2HashInvalid(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not a hash", "hunter2"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing segments", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeArgon2Hash(tc.in)
			assert.Error(t, err)
		})
	}
}

func TestDecodeArgon2HashWrongVersion(t *testing.T) {
	_, err := DecodeArgon2Hash("$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare([]byte("same"), []byte("same")))
	assert.False(t, SecureCompare([]byte("same"), []byte("other")))
	assert.False(t, SecureCompare([]byte("short"), []byte("longer value")))
	assert.True(t, SecureCompare([]byte{}, []byte{}))
}
