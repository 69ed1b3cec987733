package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/roknus/conan-ui/internal/catalog"
	"github.com/roknus/conan-ui/internal/config"
	"github.com/roknus/conan-ui/internal/server"
	"github.com/roknus/conan-ui/pkg/cache"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// server receives a stop signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the REST backend.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		port       int
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST backend over the configured Conan remotes",
		Long: `Run the REST backend over the configured Conan remotes.

The server proxies the configured remotes through the Conan server v2 REST
API and exposes package search, version listings, binary listings with
filters, and configuration detail as JSON. Responses from the remotes are
cached according to the cache configuration.

Configuration is read from a TOML file, then overridden from the
environment (BACKEND_PORT, CORS_ORIGINS, CUSTOM_REMOTE_NAME/URL/USER/
PASSWORD, CONAN_HOME). Without any configuration the server proxies
conancenter on port 8000.

Examples:
  conan-ui serve                        # conancenter on :8000
  conan-ui serve --config conan-ui.toml
  conan-ui serve --port 9000 --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, port, noCache)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the HTTP response cache")

	return cmd
}

// runServe loads the configuration, assembles the catalog, and serves the
// REST API until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath string, port int, noCache bool) error {
	prog := newProgress(c.Logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	backend, err := openCache(cfg, noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer backend.Close()

	handler := newAPIHandler(cfg, backend, c.Logger)
	prog.done(fmt.Sprintf("Configured %d remotes", len(cfg.Remotes)))

	addr := cfg.Server.Addr()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	printSuccess("Conan UI API listening on %s", StyleLink.Render("http://"+addr))
	printDetail("Remotes: %s", strings.Join(cfg.RemoteNames(), ", "))
	printDetail("Cache: %s", cacheLabel(cfg, noCache))
	printNewline()
	printNextStep("Browse interactively", "conan-ui browse")
	printNewline()

	select {
	case <-ctx.Done():
		c.Logger.Info("Shutting down", "addr", addr)
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(stopCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// newAPIHandler wires configuration, cache, and catalog into the routed
// REST handler. Split from runServe so the wiring is testable without
// binding a socket.
func newAPIHandler(cfg config.Config, backend cache.Cache, logger *log.Logger) http.Handler {
	cat := catalog.FromConfig(cfg, backend, logger)
	srv := server.New(cat, server.Options{
		Cache:       backend,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
	})
	return srv.Handler()
}

// cacheLabel describes the effective cache backend for startup output.
func cacheLabel(cfg config.Config, noCache bool) string {
	if noCache {
		return "disabled"
	}
	return cfg.Cache.Backend
}
