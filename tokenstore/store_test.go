package tokenstore_test

import (
	"testing"

	"github.com/sagarc03/apitour/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenChecker_InlineOnly(t *testing.T) {
	t.Parallel()

	checker, err := tokenstore.NewTokenChecker(tokenstore.Config{Token: "inline", Enforce: true})
	require.NoError(t, err)

	assert.Equal(t, "inline", checker.Token)
	assert.True(t, checker.Enforce)
	assert.NoError(t, checker.Check("inline"))
	assert.Error(t, checker.Check("other"))
}

func TestNewTokenChecker_FileTakesPrecedence(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `{"token": "from-file"}`)

	checker, err := tokenstore.NewTokenChecker(tokenstore.Config{Token: "inline", File: path, Enforce: true})
	require.NoError(t, err)

	assert.Equal(t, "from-file", checker.Token)
}

func TestNewTokenChecker_FileError(t *testing.T) {
	t.Parallel()

	_, err := tokenstore.NewTokenChecker(tokenstore.Config{File: "/nonexistent/token.json"})

	assert.Error(t, err)
}

func TestNewTokenChecker_NoToken(t *testing.T) {
	t.Parallel()

	_, err := tokenstore.NewTokenChecker(tokenstore.Config{Enforce: true})

	assert.ErrorIs(t, err, tokenstore.ErrTokenNotFound)
}

func TestNewTokenChecker_NotEnforced(t *testing.T) {
	t.Parallel()

	checker, err := tokenstore.NewTokenChecker(tokenstore.Config{Token: "abc"})
	require.NoError(t, err)

	assert.False(t, checker.Enforce)
	assert.NoError(t, checker.Check("wrong"))
	assert.False(t, checker.Matches("wrong"))
}
