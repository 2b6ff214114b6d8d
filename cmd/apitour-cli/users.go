package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sagarc03/apitour/clientcli"
	"github.com/spf13/cobra"
)

var (
	listPage int
	listSize int
	userForm bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Call the user routes",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Call GET /users",
	Long: `Call GET /users with optional page and size.

Omitted flags use the server defaults (page 1, size 10). The server rejects
page < 1 and size > 100.

Examples:
  apitour-cli users list
  apitour-cli users list --page 2 --size 50`,
	Args: cobra.NoArgs,
	RunE: runUsersList,
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Call GET /users/{id}",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersGet,
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <name> <age>",
	Short: "Call POST /users or POST /users/form",
	Long: `Create a user. The body is sent as JSON unless --form is set.

Examples:
  apitour-cli users create Ana 30
  apitour-cli users create --form Ana 30`,
	Args: cobra.ExactArgs(2),
	RunE: runUsersCreate,
}

var plateCmd = &cobra.Command{
	Use:   "plate <licence>",
	Short: "Call GET /licence-plates/{licence}",
	Long: `Validate a licence plate of the form XX-999-XX.

Examples:
  apitour-cli plate AB-123-CD`,
	Args: cobra.ExactArgs(1),
	RunE: runPlate,
}

func init() {
	usersListCmd.Flags().IntVar(&listPage, "page", 0, "page number")
	usersListCmd.Flags().IntVar(&listSize, "size", 0, "page size")
	usersCreateCmd.Flags().BoolVar(&userForm, "form", false, "send as application/x-www-form-urlencoded")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersCreateCmd)
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	page, err := client.ListUsers(cmd.Context(), clientcli.ListUsersOptions{Page: listPage, Size: listSize})
	if err != nil {
		return err
	}

	return getFormatter().FormatUserPage(os.Stdout, page)
}

func runUsersGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	got, err := client.GetUser(cmd.Context(), id)
	if err != nil {
		return err
	}

	return getFormatter().FormatMessage(os.Stdout, "id", got)
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	age, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid age %q: %w", args[1], err)
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	user := clientcli.User{Name: args[0], Age: age}
	if userForm {
		user, err = client.CreateUserForm(cmd.Context(), user)
	} else {
		user, err = client.CreateUser(cmd.Context(), user)
	}
	if err != nil {
		return err
	}

	return getFormatter().FormatUser(os.Stdout, user)
}

func runPlate(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	licence, err := client.LicencePlate(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return getFormatter().FormatMessage(os.Stdout, "licence", licence)
}
