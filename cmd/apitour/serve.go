package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/apitour"
	"github.com/sagarc03/apitour/config"
	"github.com/sagarc03/apitour/filesystem"
	apihttp "github.com/sagarc03/apitour/http"
	"github.com/sagarc03/apitour/tokenstore"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the apitour HTTP server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8000, "HTTP server port (env: APITOUR_SERVER_PORT)")
	serveCmd.Flags().String("token", "", "API token for the protected route (env: APITOUR_AUTH_TOKEN)")
	serveCmd.Flags().String("token-file", "", "JSON file holding the API token (env: APITOUR_AUTH_TOKEN_FILE)")
	serveCmd.Flags().Int("max-limit", 50, "cap for the shared pagination routes (env: APITOUR_PAGINATION_MAX_LIMIT)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	static, closeStatic, err := openStatic(cfg.Static.Path)
	if err != nil {
		return err
	}
	defer closeStatic()

	handler, err := newHandler(cfg, static)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"static", cfg.Static.Path,
		"max_limit", cfg.Pagination.MaxLimit,
		"token_enforced", cfg.Auth.Enforce,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// newHandler wires the configured resolvers and token checker into the router.
func newHandler(cfg *config.Config, static apitour.StaticStore) (*apihttp.Handler, error) {
	pagination, err := apitour.NewPaginationResolver(cfg.Pagination.MaxLimit)
	if err != nil {
		return nil, fmt.Errorf("create pagination resolver: %w", err)
	}

	checker, err := tokenstore.NewTokenChecker(cfg.Auth.TokenConfig())
	if err != nil {
		return nil, fmt.Errorf("load api token: %w", err)
	}

	handlerConfig := apihttp.HandlerConfig{
		Pagination:      pagination,
		Token:           checker,
		TokenHeader:     cfg.Auth.Header,
		RedirectURL:     cfg.Server.RedirectURL,
		CatFile:         cfg.Static.CatFile,
		MaxUploadMemory: cfg.Server.MaxUploadMemory,
		CORS:            cfg.CORS,
	}

	return apihttp.NewHandler(&handlerConfig, static), nil
}

// openStatic opens the static directory. A missing directory is not fatal:
// the server starts and GET /cat answers 404.
func openStatic(path string) (apitour.StaticStore, func(), error) {
	root, err := os.OpenRoot(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("static directory not found, /cat disabled", "path", path)
			return nil, func() {}, nil
		}
		return nil, nil, fmt.Errorf("open static root: %w", err)
	}

	return filesystem.NewStore(root), func() { _ = root.Close() }, nil
}
