package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"spiderbot/internal/model"
)

// MarkdownWriter renders a crawl summary as GitHub-flavored Markdown,
// using the nao1215/markdown builder for tables.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(summary *model.CrawlSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("SpiderBot Crawl Report")
	md.PlainText("")

	w.writeOverview(md, summary)
	w.writeBreakdown(md, summary)
	w.writeRecords(md, summary)

	return len(md.String()), md.Build()
}

// writeOverview writes the totals table.
func (w *MarkdownWriter) writeOverview(md *markdown.Markdown, summary *model.CrawlSummary) {
	rows := [][]string{
		{"Crawled URLs", strconv.Itoa(summary.Total)},
	}
	if summary.Total > 0 {
		rows = append(rows,
			[]string{"First crawl", summary.First.Format(model.TimestampLayout)},
			[]string{"Last crawl", summary.Last.Format(model.TimestampLayout)},
		)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeBreakdown writes the per-status-class table.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, summary *model.CrawlSummary) {
	if summary.Total == 0 {
		return
	}

	rows := make([][]string, 0, len(statusClasses))
	for _, class := range statusClasses {
		if count := summary.ByClass[class]; count > 0 {
			rows = append(rows, []string{class, strconv.Itoa(count)})
		}
	}

	md.H2("Status Breakdown")
	md.Table(markdown.TableSet{
		Header: []string{"Class", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeRecords writes the full record table.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, summary *model.CrawlSummary) {
	if summary.Total == 0 {
		return
	}

	rows := make([][]string, 0, len(summary.Records))
	for _, r := range summary.Records {
		rows = append(rows, []string{
			"`" + r.URL + "`",
			r.FormatTimestamp(),
			strconv.Itoa(r.Status),
		})
	}

	md.H2("Records")
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Timestamp", "Status"},
		Rows:   rows,
	})
}
