package main

import (
	"errors"
	"os"

	"github.com/sagarc03/apitour/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	endpoint    string
	token       string
	tokenHeader string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "apitour-cli",
	Version: version,
	Short:   "Client for the apitour server",
	Long: `apitour CLI - Client for the apitour tutorial API

Each command calls one route and prints the server's answer. Validation
failures are printed with one line per offending parameter.

Connection settings are resolved in order: profile from the config file,
then APITOUR_* environment variables, then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.apitour/config.yaml, env: APITOUR_CLI_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: APITOUR_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: http://localhost:8000, env: APITOUR_ENDPOINT)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "token for the protected route (env: APITOUR_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&tokenHeader, "token-header", "", "header carrying the token (default: Token, env: APITOUR_TOKEN_HEADER)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(helloCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(plateCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(passwordMatchCmd)
	rootCmd.AddCommand(paginateCmd)
	rootCmd.AddCommand(protectedCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		os.Exit(1)
	}
}

// getConfigPath returns the config path from flag, env or default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from the profile, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	name := profileName
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	explicit := cfgFile != "" || clientcli.ConfigPathFromEnv() != "" || name != ""

	if configPath := getConfigPath(); configPath != "" {
		file, err := clientcli.LoadConfigFile(configPath)
		switch {
		case err == nil:
			p, perr := file.GetProfile(name)
			if perr != nil && (name != "" || !errors.Is(perr, clientcli.ErrNoProfiles)) {
				return nil, perr
			}
			configs = append(configs, clientcli.ConfigFromProfile(p))
		case explicit:
			// Only error if the user asked for a config file or profile
			return nil, err
		}
	}

	configs = append(configs, clientcli.ConfigFromEnv(), &clientcli.Config{
		Endpoint:    endpoint,
		Token:       token,
		TokenHeader: tokenHeader,
	})

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}
