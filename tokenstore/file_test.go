package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/apitour/tokenstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTokenFromFile_ValidJSON(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `{"token": "SECRET_VALUE"}`)

	token, err := tokenstore.LoadTokenFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "SECRET_VALUE", token)
}

func TestLoadTokenFromFile_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, `{"token": "  abc \n"}`)

	token, err := tokenstore.LoadTokenFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", token)
}

func TestLoadTokenFromFile_EmptyToken(t *testing.T) {
	t.Parallel()

	for _, content := range []string{`{}`, `{"token": ""}`, `{"token": "   "}`} {
		path := writeTestFile(t, content)

		_, err := tokenstore.LoadTokenFromFile(path)

		assert.ErrorIs(t, err, tokenstore.ErrTokenNotFound, content)
	}
}

func TestLoadTokenFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := tokenstore.LoadTokenFromFile("/nonexistent/path/token.json")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read token file")
}

func TestLoadTokenFromFile_InvalidJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "this is not json"},
		{name: "array", content: `["SECRET_VALUE"]`},
		{name: "wrong type", content: `{"token": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestFile(t, tt.content)

			_, err := tokenstore.LoadTokenFromFile(path)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "parse token file")
		})
	}
}
