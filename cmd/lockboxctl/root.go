package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lockboxctl",
	Short: "Lockbox administration tool",
	Long:  `A tool for managing the Lockbox database schema, configuration and resource maintenance tasks.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
