package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"route-analytics-service/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("listen-addr", config.DefaultListenAddr, "address the HTTP server listens on")
	f.String("nats-url", "", "NATS URL for cross-instance cache invalidation")
	f.Bool("auto-migrate", true, "apply schema migrations on start")
	f.Bool("validate-airlines", false, "reject routes whose airline is not registered")
	_ = viper.BindPFlags(f)
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	bus, err := newBus(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Warnw("closing invalidation bus", "error", err)
		}
	}()

	app, err := newServer(cfg, db, bus)
	if err != nil {
		return err
	}

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Errorw("fiber stopped", "error", err)
		}
	}()

	log.Infow("server started", "addr", cfg.ListenAddr, "backend", cfg.DB.Backend, "nats", cfg.NATS.URL != "")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("fiber shutdown error", "error", err)
	}

	log.Info("server exiting")
	return nil
}
