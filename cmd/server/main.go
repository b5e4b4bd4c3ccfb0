// Package main is the entry point for the Lumina API server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/lumina-api/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "lumina-api",
	Short: "Lumina transformation game server",
	Long:  `Lumina API runs the transformation board game rules engine over gRPC and HTTP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
