package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"route-analytics-service/internal/config"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg holds the validated configuration once PersistentPreRunE has run.
var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "route-analytics",
	Short: "Time-bucketed analytics over flight-route records.",
	Long: `route-analytics stores flight-route records and aggregates them into
chart matrices: one metric summed per time bucket and category.`,
	Version:           version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is .route-analytics.yaml in . or $HOME)")
	pf.String("db-backend", "postgres", "database backend: postgres, sqlite or mysql")
	pf.String("db-dsn", "", "database connection string")
	pf.String("log-level", config.DefaultLogLevel, "log level: trace, debug, info, warn, error")
	_ = viper.BindPFlags(pf)

	rootCmd.AddCommand(serveCmd, migrateCmd, aggregateCmd, exportCmd, versionCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	v := viper.GetViper()
	config.Setup(v, v.GetString("config"))

	loaded, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded
	log.SetLevel(cfg.LogLevel)
	return nil
}
