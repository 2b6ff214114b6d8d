package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// TokenFile is the on-disk shape of a token file.
type TokenFile struct {
	Token string `json:"token" mapstructure:"token"`
}

// LoadTokenFromFile loads the API token from a JSON file:
//
//	{"token": "SECRET_VALUE"}
//
// Surrounding whitespace is trimmed. An empty token yields ErrTokenNotFound.
func LoadTokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	var tf TokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("parse token file: %w", err)
	}

	token := strings.TrimSpace(tf.Token)
	if token == "" {
		return "", fmt.Errorf("token file %s: %w", path, ErrTokenNotFound)
	}

	return token, nil
}
