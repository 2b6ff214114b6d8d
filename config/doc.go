// Package config provides configuration loading and validation for apitour.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (APITOUR_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with APITOUR_ prefix:
//   - server.port → APITOUR_SERVER_PORT
//   - auth.token → APITOUR_AUTH_TOKEN
//   - pagination.max_limit → APITOUR_PAGINATION_MAX_LIMIT
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: empty for development, prod or production for JSON logs
//   - Server: port, upload memory, redirect target and timeouts
//   - Static: directory and file name served by GET /cat
//   - Auth: token header, token or token file, and whether mismatches are rejected
//   - Pagination: max_limit shared by the pagination routes
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - redirect_url must be a URL
//   - auth.token is required unless auth.token_file is set
//   - pagination.max_limit must not be negative
//   - Log level must be debug, info, warn, or error
package config
