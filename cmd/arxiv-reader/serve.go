package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-reader/internal/reader"
	"github.com/pdiddy/arxiv-reader/internal/search"
	"github.com/pdiddy/arxiv-reader/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve read_paper and search_papers as MCP tools",
	Long: `Serve runs a Model Context Protocol server exposing the read_paper and
search_papers tools. By default it speaks MCP over stdin/stdout; with --http
it listens for streamable HTTP on /mcp and also serves /health and
/papers/{id}?level=... returning Markdown.

Logs are written to stderr as JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("http", "", "listen address for streamable HTTP (e.g. :8080); stdio when empty")

	_ = viper.BindPFlag("server.http_addr", serveCmd.Flags().Lookup("http"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	tools := &server.Tools{
		Reader: reader.New(cfg, os.Stderr),
		Backends: []search.Backend{
			&search.ArxivBackend{Client: &http.Client{Timeout: cfg.HTTP.Timeout}},
		},
		SearchConfig: cfg.Search,
		Warnings:     os.Stderr,
	}
	mcpServer := server.NewMCPServer(tools, version)

	ctx := cmd.Context()
	if cfg.Server.HTTPAddr == "" {
		log.Info("starting arxiv-reader", "transport", "stdio", "version", version)
		if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	httpServer := &http.Server{
		Addr:        cfg.Server.HTTPAddr,
		Handler:     server.NewServer(tools, mcpServer, log),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Server.HTTPAddr)
	if err != nil {
		return err
	}
	log.Info("starting arxiv-reader", "transport", "http", "addr", ln.Addr().String(), "version", version)
	return serveUntilDone(ctx, httpServer, ln, log)
}

// serveUntilDone serves on ln until ctx is cancelled, then waits up to
// shutdownTimeout for in-flight requests to finish.
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, log *slog.Logger) error {
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", "error", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Serve returns as soon as Shutdown starts; wait for it to drain.
	<-stopped
	return nil
}
