package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zalepa/ridership/config"
	"github.com/zalepa/ridership/export"
	"github.com/zalepa/ridership/server"
)

// Web implements the "web" subcommand.
func Web(args []string) {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	configPath := fs.String("config", "ridership.yml", "YAML config file (optional)")
	addr := fs.String("addr", "", "listen address, overrides the config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ridership web [--config ridership.yml] [--addr :8080]\n\nStart the upload-and-compare dashboard. Settings may also be given as\n%s_* environment variables.\n\nFlags:\n", config.EnvPrefix)
		fs.PrintDefaults()
	}
	fs.Parse(reorderArgs(args))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log := newLogger(cfg.Logging)
	if cfg.Chart.FontPath != "" {
		if err := export.UseFont(cfg.Chart.FontPath); err != nil {
			log.Error("loading chart font", slog.String("path", cfg.Chart.FontPath), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv := server.New(server.Options{
		Workers:        cfg.Ingest.Workers,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		BatchCapacity:  cfg.Batches.Capacity,
		BatchTTL:       cfg.Batches.TTL,
	}, log)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("serving", slog.String("addr", cfg.Server.Addr))
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", slog.String("error", err.Error()))
		}
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
