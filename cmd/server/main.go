// Package main is the entry point for the combat API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "combat-api",
	Short: "Tactical combat simulator API",
	Long:  `combat-api runs turn-based tactical grid battles and serves them over a JSON HTTP API.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
