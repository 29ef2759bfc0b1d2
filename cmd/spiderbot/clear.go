package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spiderbot/internal/config"
	"spiderbot/internal/storage"
)

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard all recorded crawl data",
		Long: `Clear discards every record in the storage target.

After clearing, the next crawl starts cold: no URL is considered
already visited. This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: runClearCmd,
	}

	cmd.Flags().StringP("storage", "s", "",
		"Storage target to clear (default: XDG data dir)")

	return cmd
}

// runClearCmd executes the clear command.
func runClearCmd(cmd *cobra.Command, _ []string) error {
	target, err := cmd.Flags().GetString("storage")
	if err != nil {
		return err
	}
	if target == "" {
		target = config.NewConfig().StorageTarget
	}

	sink, err := storage.Open(target)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer sink.Close()

	if err := sink.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cleared crawl data in %s\n", target)
	return nil
}
