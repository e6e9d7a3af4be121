// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/themeapi/internal/catalog"
	"github.com/codr1/themeapi/internal/config"
	"github.com/codr1/themeapi/internal/fonts"
	"github.com/codr1/themeapi/internal/themestore"
)

type rootState struct {
	configPath string
	port       int
}

func newRootCmd() *cobra.Command {
	state := &rootState{}

	cmd := &cobra.Command{
		Use:           "themeapi",
		Short:         "Serve the theme catalog and font files over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), state)
		},
	}
	cmd.PersistentFlags().StringVar(&state.configPath, "config", "", "optional YAML config file")
	cmd.Flags().IntVar(&state.port, "port", 0, "listen port (overrides PORT)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), state)
		},
	}
	serveCmd.Flags().IntVar(&state.port, "port", 0, "listen port (overrides PORT)")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the seed theme catalog with color swatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := catalog.SeedThemes()
			if err != nil {
				return err
			}
			return renderCatalog(cmd.OutOrStdout(), seed)
		},
	}

	cmd.AddCommand(serveCmd, catalogCmd)
	return cmd
}

func loadConfig(state *rootState) (*config.Config, error) {
	cfg, err := config.Load(state.configPath)
	if err != nil {
		return nil, err
	}
	if state.port != 0 {
		cfg.App.Port = state.port
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if level, err := zerolog.ParseLevel(cfg.App.LogLevel); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func runServe(ctx context.Context, state *rootState) error {
	cfg, err := loadConfig(state)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg)

	seed, err := catalog.SeedThemes()
	if err != nil {
		return fmt.Errorf("failed to load seed themes: %w", err)
	}
	store, err := themestore.New(seed)
	if err != nil {
		return fmt.Errorf("failed to build theme store: %w", err)
	}

	if info, err := os.Stat(cfg.Fonts.Dir); err != nil || !info.IsDir() {
		log.Warn().Str("fonts_dir", cfg.Fonts.Dir).Msg("Font directory is not readable; font endpoints will return errors")
	}

	server := newServer(cfg, dependencies{
		store:    store,
		resolver: fonts.NewDirResolver(cfg.Fonts.Dir),
		clock:    clockwork.NewRealClock(),
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		logEndpoints(cfg.App.Port, store.Count())
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
