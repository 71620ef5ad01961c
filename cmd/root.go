package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/config"
)

var (
	configPath string

	// cfg is loaded by the root PersistentPreRunE before any subcommand
	// runs.
	cfg *config.Config
)

// rootCmd is the base command for the CLI.  It delegates to
// subcommands defined in client.go, server.go and demo.go.  See init
// functions in those files for flag definitions.
var rootCmd = &cobra.Command{
	Use:   "user-records",
	Short: "Append-only user record store",
	Long:  "Command line interface to serve the user record store over gRPC and HTTP, query it as a client, or run the demo.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath,
		"config", "c", "", "Path to a YAML config file")
}

// Execute runs the root command.  It should be invoked from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
