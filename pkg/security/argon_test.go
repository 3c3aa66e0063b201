package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFromPassword_Format(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v="))
	assert.Len(t, strings.Split(encoded, "$"), 6)
}

func TestVerifyPasswd_RoundTrip(t *testing.T) {
	a := NewArgon()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong horse", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswd_UniqueSalts(t *testing.T) {
	a := NewArgon()

	first, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)

	second, err := a.GenerateFromPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswd_RejectsMalformedHash(t *testing.T) {
	a := NewArgon()

	_, err := a.VerifyPasswd("whatever", "not-a-phc-string")
	assert.Error(t, err)

	_, err = a.VerifyPasswd("whatever", "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
