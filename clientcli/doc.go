// Package clientcli provides a client library for apitour servers.
//
// Every route of the server has a typed method on Client. Validation
// failures come back as *APIError carrying the per-parameter details the
// server reported. The package includes profile-based configuration for
// managing connections to multiple servers.
//
// # Basic Usage
//
//	cfg := &clientcli.Config{
//		Endpoint: "http://localhost:8000",
//		Token:    "SECRET_VALUE",
//	}
//
//	client, err := clientcli.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.ListUsers(ctx, clientcli.ListUsersOptions{Page: 2})
//
// # Profile Configuration
//
// Use profiles to manage multiple server configurations:
//
//	configFile, err := clientcli.LoadConfigFile("~/.apitour/config.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	profile, err := configFile.GetProfile("staging")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := clientcli.ConfigFromProfile(profile)
//	client, err := clientcli.New(cfg)
//
// # Output Formatting
//
// Use formatters for human-readable or JSON output:
//
//	formatter := clientcli.NewFormatter(jsonOutput, quiet)
//	formatter.FormatUser(os.Stdout, user)
package clientcli
