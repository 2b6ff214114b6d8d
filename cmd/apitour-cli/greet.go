package main

import (
	"os"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Call GET /index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		msg, err := client.Index(cmd.Context())
		if err != nil {
			return err
		}
		return getFormatter().FormatMessage(os.Stdout, "msg", msg)
	},
}

var helloCmd = &cobra.Command{
	Use:   "hello <value>",
	Short: "Call GET / with the hello header",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		value, err := client.Hello(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return getFormatter().FormatMessage(os.Stdout, "hello", value)
	},
}

var passwordMatchCmd = &cobra.Command{
	Use:   "password-match <password> <confirm>",
	Short: "Call POST /password-match",
	Long: `Send a password and its confirmation. The server answers 400 when
they differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		msg, err := client.PasswordMatch(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return getFormatter().FormatMessage(os.Stdout, "message", msg)
	},
}

var protectedCmd = &cobra.Command{
	Use:   "protected",
	Short: "Call GET /rota-protegida with the configured token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := getClient()
		if err != nil {
			return err
		}

		hello, err := client.Protected(cmd.Context())
		if err != nil {
			return err
		}
		return getFormatter().FormatMessage(os.Stdout, "hello", hello)
	},
}
