package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(digest, "$argon2id$"))
	assert.NotContains(t, digest, "correct horse battery staple")

	assert.True(t, VerifyPassword("correct horse battery staple", digest))
	assert.False(t, VerifyPassword("correct horse battery stapl", digest))
	assert.False(t, VerifyPassword("", digest))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same password", first))
	assert.True(t, VerifyPassword("same password", second))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"not a hash", "not-a-hash"},
		{"bcrypt digest", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"missing sections", "$argon2id$v=19$m=65536,t=1,p=4"},
		{"bad parameters", "$argon2id$v=19$m=abc,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=65536,t=1,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, VerifyPassword("anything", tt.digest))
		})
	}
}

func TestVerifyPasswordTamperedDigest(t *testing.T) {
	digest, err := HashPassword("secret")
	require.NoError(t, err)

	// Flip a character in the encoded key
	tampered := digest[:len(digest)-2] + "xx"
	assert.False(t, VerifyPassword("secret", tampered))
}
