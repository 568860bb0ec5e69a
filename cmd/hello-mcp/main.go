package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mattt/hello-mcp/internal/config"
	"github.com/mattt/hello-mcp/internal/greeting"
	"github.com/mattt/hello-mcp/mcp"
)

var rootCmd = &cobra.Command{
	Use:   "hello-mcp",
	Short: "A minimal MCP server exposing a hello world tool",
	Long: `hello-mcp is a Model Context Protocol server that speaks JSON-RPC 2.0
over stdin and stdout. It exposes a single helloWorld tool that greets the caller.

Diagnostics are written to stderr; stdout carries protocol messages only.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		g, ctx := errgroup.WithContext(ctx)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		g.Go(func() error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			return run(ctx, cfg, os.Stdin, os.Stdout, logger)
		})

		return g.Wait()
	},
}

// newRegistry registers every enabled tool and freezes the registry.
func newRegistry(cfg *config.Config, logger *slog.Logger) (*mcp.Registry, error) {
	registry := mcp.NewRegistry()

	tools := []mcp.Tool{
		greeting.New(cfg.Greeting.DefaultName),
	}
	for _, tool := range tools {
		name := tool.Definition().Name
		if cfg.IsToolDisabled(name) {
			logger.Info("tool disabled by configuration", "tool", name)
			continue
		}
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}

	registry.Freeze()
	return registry, nil
}

// run serves MCP on in/out until the input ends or ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *slog.Logger) error {
	registry, err := newRegistry(cfg, logger)
	if err != nil {
		return fmt.Errorf("error creating registry: %w", err)
	}

	server, err := mcp.NewServer(registry,
		mcp.WithServerInfo(cfg.Name, cfg.Version),
		mcp.WithLogger(logger),
		mcp.WithToolTimeout(cfg.ToolTimeout),
	)
	if err != nil {
		return err
	}

	logger.Info("starting server", "name", cfg.Name, "version", cfg.Version, "tools", registry.Len())
	defer logger.Info("server stopped")

	transport := mcp.NewStdioTransport(in, out, logger)
	return transport.Run(ctx, server)
}

var (
	verbose    bool
	configPath string

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request and response to stderr")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built at: %s)", version, commit, date)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
