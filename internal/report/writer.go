package report

import (
	"fmt"
	"io"

	"spiderbot/internal/model"
)

// Writer renders a crawl summary to some destination.
type Writer interface {
	// Write outputs the summary. Returns the number of bytes written
	// and any error encountered.
	Write(summary *model.CrawlSummary) (int, error)
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// MultiWriter writes the same summary to multiple Writers, stopping at
// the first error. It returns the total bytes written.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write implements Writer.
func (w *MultiWriter) Write(summary *model.CrawlSummary) (int, error) {
	total := 0
	for _, writer := range w.writers {
		n, err := writer.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SimpleWriter renders a plain-text summary for terminal output.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *SimpleWriter) Write(summary *model.CrawlSummary) (int, error) {
	total := 0

	n, err := fmt.Fprintf(w.output, "Crawled URLs: %d\n", summary.Total)
	total += n
	if err != nil {
		return total, err
	}

	if summary.Total == 0 {
		return total, nil
	}

	for _, class := range statusClasses {
		if count := summary.ByClass[class]; count > 0 {
			n, err := fmt.Fprintf(w.output, "  %-13s %d\n", class+":", count)
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprintf(w.output, "First crawl:  %s\nLast crawl:   %s\n",
		summary.First.Format(model.TimestampLayout),
		summary.Last.Format(model.TimestampLayout),
	)
	total += n
	return total, err
}

// statusClasses lists the status classes in display order.
var statusClasses = []string{"success", "redirect", "client_error", "server_error", "failed"}
