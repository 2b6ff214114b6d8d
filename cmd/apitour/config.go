package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/apitour/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after merging defaults, config files,
APITOUR_ environment variables and flags. The token is masked unless
--show-secrets is given.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().Bool("show-secrets", false, "print the API token in clear text")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	out := *cfg
	if show, _ := cmd.Flags().GetBool("show-secrets"); !show && out.Auth.Token != "" {
		out.Auth.Token = "********"
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
