// Package cmd wires the webgate commands: the stdio MCP server, a local
// REPL for poking at tools, and a catalog listing.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"webgate/internal/config"
)

var (
	headlessFlag     bool
	proxyFlag        string
	stealthFlag      bool
	ignoreCertErrors bool
)

var rootCmd = &cobra.Command{
	Use:   "webgate",
	Short: "Browser automation and HTTP tools behind an MCP stdio server",
	Long: `Webgate exposes a fixed catalog of browser automation, HTTP and
test-generation tools over the Model Context Protocol. A single long-lived
browser session is shared by all tool calls and launched lazily on the first
call that needs it.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&headlessFlag, "headless", false, "run the browser headless (overrides WEBGATE_HEADLESS and per-call settings)")
	rootCmd.PersistentFlags().StringVar(&proxyFlag, "proxy", "", `proxy settings as JSON, e.g. {"server":"http://host:8080"} (overrides WEBGATE_PROXY)`)
	rootCmd.PersistentFlags().BoolVar(&stealthFlag, "stealth", false, "apply bot-detection evasions to new pages")
	rootCmd.PersistentFlags().BoolVar(&ignoreCertErrors, "ignore-cert-errors", false, "ignore TLS certificate errors in the browser")

	// Help and usage must never pollute the stdio protocol stream.
	rootCmd.SetOut(os.Stderr)
	rootCmd.SetErr(os.Stderr)
}

// resolveConfig snapshots flags and environment into the immutable config.
func resolveConfig() *config.Config {
	return config.Resolve(config.Inputs{
		HeadlessFlag:     headlessFlag,
		HeadlessFlagSet:  rootCmd.PersistentFlags().Changed("headless"),
		ProxyFlag:        proxyFlag,
		StealthFlag:      stealthFlag,
		IgnoreCertErrors: ignoreCertErrors,
		LookupEnv:        os.LookupEnv,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
