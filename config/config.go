package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apihttp "github.com/sagarc03/apitour/http"
	"github.com/sagarc03/apitour/tokenstore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "APITOUR"

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for apitour.
type Config struct {
	Env        string             `mapstructure:"env" yaml:"env" validate:"omitempty,oneof=dev development prod production"`
	Server     ServerConfig       `mapstructure:"server" yaml:"server"`
	Static     StaticConfig       `mapstructure:"static" yaml:"static"`
	Auth       AuthConfig         `mapstructure:"auth" yaml:"auth"`
	Pagination PaginationConfig   `mapstructure:"pagination" yaml:"pagination"`
	CORS       apihttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log        LogConfig          `mapstructure:"log" yaml:"log"`
}

// IsProduction reports whether env selects production behavior.
func (c *Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	MaxUploadMemory int64  `mapstructure:"max_upload_memory" yaml:"max_upload_memory" validate:"min=1"`
	RedirectURL     string `mapstructure:"redirect_url" yaml:"redirect_url" validate:"required,url"`
	ReadTimeout     int    `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=1"`
	WriteTimeout    int    `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=1"`
	IdleTimeout     int    `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=1"`
}

// StaticConfig locates the files served by GET /cat.
type StaticConfig struct {
	Path    string `mapstructure:"path" yaml:"path" validate:"required"`
	CatFile string `mapstructure:"cat_file" yaml:"cat_file" validate:"required"`
}

// AuthConfig holds the static token check configuration.
type AuthConfig struct {
	Header    string `mapstructure:"header" yaml:"header" validate:"required"`
	Token     string `mapstructure:"token" yaml:"token" validate:"required_without=TokenFile"`
	TokenFile string `mapstructure:"token_file" yaml:"token_file"`
	Enforce   bool   `mapstructure:"enforce" yaml:"enforce"`
}

// TokenConfig converts the auth section for tokenstore.NewTokenChecker.
func (a AuthConfig) TokenConfig() tokenstore.Config {
	return tokenstore.Config{Token: a.Token, File: a.TokenFile, Enforce: a.Enforce}
}

// PaginationConfig holds the cap shared by the pagination routes.
type PaginationConfig struct {
	MaxLimit int `mapstructure:"max_limit" yaml:"max_limit" validate:"min=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":        "server.port",
	"static-path": "static.path",
	"token":       "auth.token",
	"token-file":  "auth.token_file",
	"max-limit":   "pagination.max_limit",
	"log-level":   "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "")

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_memory", 32<<20)
	v.SetDefault("server.redirect_url", "https://fastapi.tiangolo.com")
	v.SetDefault("server.read_timeout", 30)  // seconds
	v.SetDefault("server.write_timeout", 30) // seconds
	v.SetDefault("server.idle_timeout", 120) // seconds

	v.SetDefault("static.path", "./assets")
	v.SetDefault("static.cat_file", "cat.jpg")

	v.SetDefault("auth.header", "Token")
	v.SetDefault("auth.token", "SECRET_VALUE")
	v.SetDefault("auth.token_file", "")
	v.SetDefault("auth.enforce", true)

	v.SetDefault("pagination.max_limit", 50)

	v.SetDefault("cors.enabled", false)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Token"})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
