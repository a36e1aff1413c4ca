// Command vitrine runs the checkout builder service: theme persistence,
// order catalog, payment initiation, postal lookup proxy, and the isolated
// checkout preview engine, over HTTP and MCP.
//
// Usage:
//
//	vitrine -config vitrine.yaml
//	vitrine -listen :8090 -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/vitrine/dashboard"
	"github.com/hazyhaar/vitrine/dbopen"
	"github.com/hazyhaar/vitrine/orderdata"
	"github.com/hazyhaar/vitrine/postal"
	"github.com/hazyhaar/vitrine/preview"
	"github.com/hazyhaar/vitrine/themestore"
)

func main() {
	configPath := flag.String("config", "", "path to vitrine.yaml config file")
	listenAddr := flag.String("listen", "", "listen address override")
	hostURL := flag.String("host-url", "", "editor host page whose stylesheets the preview replicates")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *listenAddr, *hostURL); err != nil {
		logger.Error("vitrine: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, listenAddr, hostURL string) error {
	cfg, err := dashboard.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}
	cfg.ListenAddr = env("VITRINE_LISTEN", cfg.ListenAddr)
	cfg.DataDir = env("VITRINE_DATA_DIR", cfg.DataDir)

	// Stores.
	themeDB, err := dbopen.Open(filepath.Join(cfg.DataDir, "themes.db"),
		dbopen.WithMkdirAll(), dbopen.WithSchema(themestore.Schema))
	if err != nil {
		return err
	}
	defer themeDB.Close()

	catalogDB, err := dbopen.Open(filepath.Join(cfg.DataDir, "catalog.db"),
		dbopen.WithMkdirAll(), dbopen.WithSchema(orderdata.Schema))
	if err != nil {
		return err
	}
	defer catalogDB.Close()

	catalog := orderdata.New(catalogDB, logger)
	if err := catalog.Seed(ctx); err != nil {
		return err
	}

	// Preview engine over headless Chrome.
	engine := preview.NewEngine(preview.EngineConfig{
		RemoteURL:       cfg.Browser.RemoteURL,
		MemoryLimit:     cfg.Browser.MemoryLimitMB << 20,
		RecycleInterval: time.Duration(cfg.Browser.RecycleHours) * time.Hour,
		Logger:          logger,
	})
	if err := engine.Start(ctx); err != nil {
		return err
	}
	defer engine.Close()

	if hostURL != "" {
		if err := replicateHostStyles(ctx, engine, hostURL); err != nil {
			logger.Warn("vitrine: style replication failed, baseline only", "error", err)
		}
	}

	surface := preview.NewSurface(
		engine.Factory(),
		func(mode preview.Mode, px int) {
			logger.Debug("vitrine: preview height", "mode", mode, "px", px)
		},
		logger,
	)
	defer surface.Close()

	svc := dashboard.New(cfg, dashboard.Deps{
		Themes:   themestore.New(themeDB, logger),
		Catalog:  catalog,
		Postal:   postal.NewClient(cfg.Postal.BaseURL, postal.WithLogger(logger)),
		Surface:  surface,
		Payments: dashboard.NewPixInitiator("http://"+cfg.ListenAddr, nil),
		Logger:   logger,
	})

	// Router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	svc.RegisterHTTP(r)

	// MCP tool surface on the same listener.
	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "vitrine",
		Version: "1.0.0",
	}, nil)
	svc.RegisterMCP(mcpSrv)
	r.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpSrv
	}, nil))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("vitrine: listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("vitrine: shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// replicateHostStyles fetches the editor host page and seeds the engine with
// its replicated styling.
func replicateHostStyles(ctx context.Context, engine *preview.Engine, hostURL string) error {
	base, err := url.Parse(hostURL)
	if err != nil {
		return fmt.Errorf("host url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hostURL, nil)
	if err != nil {
		return fmt.Errorf("fetch host page: %w", err)
	}
	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		return fmt.Errorf("fetch host page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read host page: %w", err)
	}

	engine.ReplicateHostStyles(ctx, string(doc), base)
	return nil
}

// env returns the environment value for key, or def when unset.
func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
