package main

import (
	"os"

	"github.com/sagarc03/apitour/clientcli"
	"github.com/spf13/cobra"
)

var (
	pageSkip  int
	pageLimit int
	pageNum   int
	pageSize  int
)

var paginateCmd = &cobra.Command{
	Use:   "paginate <variant>",
	Short: "Call one of the pagination routes",
	Long: `Call a pagination route and print the resolved window.

Variants:
  function     GET /paginacao             skip/limit, limit capped at 100
  shared       GET /paginacao-nova        skip/limit, limit capped by the server
  skip-limit   GET /paginacao-metodo-um   skip/limit, limit capped by the server
  page-size    GET /paginacao-metodo-dois page/size, size capped by the server

Examples:
  apitour-cli paginate shared --limit 500
  apitour-cli paginate page-size --page 3 --size 20`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: variantNames(),
	RunE:      runPaginate,
}

func init() {
	paginateCmd.Flags().IntVar(&pageSkip, "skip", 0, "items to skip")
	paginateCmd.Flags().IntVar(&pageLimit, "limit", 0, "maximum items")
	paginateCmd.Flags().IntVar(&pageNum, "page", 0, "page number (page-size only)")
	paginateCmd.Flags().IntVar(&pageSize, "size", 0, "page size (page-size only)")
}

func variantNames() []string {
	names := make([]string, len(clientcli.Variants))
	for i, v := range clientcli.Variants {
		names[i] = string(v)
	}
	return names
}

func runPaginate(cmd *cobra.Command, args []string) error {
	variant, err := clientcli.ParseVariant(args[0])
	if err != nil {
		return err
	}

	// Only flags the user set are sent, so server defaults apply otherwise.
	flagValue := func(name string, v int) *int {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &v
	}
	opts := clientcli.PaginateOptions{
		Skip:  flagValue("skip", pageSkip),
		Limit: flagValue("limit", pageLimit),
		Page:  flagValue("page", pageNum),
		Size:  flagValue("size", pageSize),
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	window, err := client.Paginate(cmd.Context(), variant, opts)
	if err != nil {
		return err
	}

	return getFormatter().FormatWindow(os.Stdout, window)
}
