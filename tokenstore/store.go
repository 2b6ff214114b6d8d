// Package tokenstore resolves the static API token from configuration.
package tokenstore

import (
	"log/slog"

	"github.com/sagarc03/apitour"
)

// Config holds configuration for loading the API token.
type Config struct {
	Token   string `mapstructure:"token"`      // Inline token from config
	File    string `mapstructure:"token_file"` // Path to JSON file containing the token
	Enforce bool   `mapstructure:"enforce"`    // Reject mismatches; false only logs them
}

// NewTokenChecker builds an apitour.TokenChecker from cfg. The token file
// takes precedence over the inline token when both are set.
func NewTokenChecker(cfg Config) (apitour.TokenChecker, error) {
	token := cfg.Token

	if cfg.File != "" {
		fileToken, err := LoadTokenFromFile(cfg.File)
		if err != nil {
			return apitour.TokenChecker{}, err
		}
		token = fileToken
	}

	if token == "" {
		return apitour.TokenChecker{}, ErrTokenNotFound
	}

	if !cfg.Enforce {
		slog.Warn("api token is not enforced, protected routes accept any token")
	}

	return apitour.TokenChecker{Token: token, Enforce: cfg.Enforce}, nil
}
