// Package main provides the entry point for the SpiderBot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for SpiderBot.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spiderbot",
		Short: "Polite, domain-scoped breadth-first web crawler",
		Long: `SpiderBot is a polite, domain-scoped breadth-first web crawler.
Given a seed URL it fetches pages concurrently, extracts outbound links,
deduplicates visited URLs, and persists each visit with its fetch status.

Crawls are resumable: URLs recorded in the storage target are never
fetched again, and "spiderbot clear" discards all recorded state.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
