package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"route-analytics-service/internal/platform/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(database.Up), string(database.Down)},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := database.Up
		if len(args) == 1 {
			dir = database.Direction(args[0])
		}
		if err := cfg.RequireDSN(); err != nil {
			return err
		}

		res, err := database.Migrate(cmd.Context(), cfg.DB.Backend, cfg.DB.DSN, dir)
		if err != nil {
			return err
		}

		if !res.Changed {
			color.New(color.FgHiBlack).Fprintf(cmd.OutOrStdout(), "%s schema already at version %d\n", cfg.DB.Backend, res.To)
			return nil
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s schema migrated %s: %d -> %d\n", cfg.DB.Backend, dir, res.From, res.To)
		return nil
	},
}
