package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)

	id, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", 42)
	require.NoError(t, err)

	_, err = ParseToken("other", token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	assert.Error(t, err)
}
