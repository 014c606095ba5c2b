package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution with no failed checks.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid
	// arguments, server unreachable).
	ExitCodeError = 1
	// ExitCodeChecksFailed indicates the run completed but at least one
	// conformance check failed.
	ExitCodeChecksFailed = 2
)

// rootCmd represents the base command for the scimtester application.
var rootCmd = &cobra.Command{
	Use:   "scimtester",
	Short: "Check a SCIM 2.0 server for RFC 7643/7644 conformance",
	Long: `scimtester drives conformance checks against a SCIM 2.0 server.

It discovers the server's schemas and resource types, synthesizes
schema-valid test objects, and exercises the discovery, CRUD and PATCH
behaviors the RFCs require, cleaning up every object it created.`,
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. It is called from the
// main package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "scimtester version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		if err == errChecksFailed {
			os.Exit(ExitCodeChecksFailed)
		}
		os.Exit(ExitCodeError)
	}
}
