package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"spiderbot/internal/config"
	"spiderbot/internal/model"
	"spiderbot/internal/report"
	"spiderbot/internal/storage"
)

// errConflictingFormats is returned when both --json and --markdown are
// specified. Only one output format can be used at a time.
var errConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded crawl data",
		Long: `Report reads the storage target and renders a summary of every
recorded crawl: totals, a status breakdown, and the full record list.

The default output is plain text. Use --json for tool integration or
--markdown for documentation.

Examples:
  spiderbot report
  spiderbot report --storage crawl.db --json
  spiderbot report --markdown -o crawl-report.md`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("storage", "s", "",
		"Storage target to summarize (default: XDG data dir)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file instead of stdout")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	target, err := cmd.Flags().GetString("storage")
	if err != nil {
		return err
	}
	if target == "" {
		target = config.NewConfig().StorageTarget
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return errConflictingFormats
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	sink, err := storage.Open(target)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer sink.Close()

	records, err := sink.LoadAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(outputPath) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writer := newReportWriter(out, asJSON, asMarkdown)
	if _, err := writer.Write(model.NewCrawlSummary(records)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// newReportWriter picks the writer for the requested format.
func newReportWriter(out io.Writer, asJSON, asMarkdown bool) report.Writer {
	switch {
	case asJSON:
		return report.NewJSONWriter(out, report.WithPrettyPrint())
	case asMarkdown:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewSimpleWriter(out)
	}
}
