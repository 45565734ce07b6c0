package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/irvinng98/New2Canada/internal/api"
	"github.com/irvinng98/New2Canada/internal/chat"
	"github.com/irvinng98/New2Canada/internal/config"
	"github.com/irvinng98/New2Canada/internal/gemini"
	"github.com/irvinng98/New2Canada/internal/routing"
	"github.com/irvinng98/New2Canada/internal/session"
	"github.com/irvinng98/New2Canada/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistance server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "n2c version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		// Fail closed: without credentials the service refuses to start
		// instead of limping along and failing every chat request.
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	gen, err := gemini.New(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return fmt.Errorf("initializing generation backend: %w", err)
	}

	registry := routing.New(routing.DefaultBindings(), cfg.Gemini.FallbackModel)
	orch := chat.New(registry, gen)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)

	router := api.NewRouter(api.Deps{
		Store:    store,
		Orch:     orch,
		Registry: registry,
		Sessions: sessions,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// MCP over stdio alongside the HTTP API.
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Orch:     orch,
		Registry: registry,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("n2c listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
