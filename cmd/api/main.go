package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/roozegaar/calendar/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roozegaar",
		Short: "Roozegaar Calendar API Server",
		Long:  `Roozegaar is a dual-calendar (Persian/Gregorian) service: date conversion, national and religious event lookup with caching, and personal events.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
