package main

import (
	"os"

	"github.com/fatih/color"
)

// @title Route Analytics API
// @version 1.0
// @description Stores flight-route records and aggregates them into time-bucketed chart matrices.
// @host localhost:8080
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
