package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarc03/apitour/config"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the registered routes",
	RunE:  runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	handler, err := newHandler(cfg, nil)
	if err != nil {
		return err
	}

	routes, err := handler.Routes()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "METHOD\tPATH")
	for _, r := range routes {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", r.Method, r.Pattern)
	}
	return tw.Flush()
}
