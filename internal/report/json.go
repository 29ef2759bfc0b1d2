package report

import (
	"encoding/json"
	"io"
	"time"

	"spiderbot/internal/model"
)

// JSONWriter renders a crawl summary as JSON for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonRecord is the serialized form of one crawl record.
type jsonRecord struct {
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
}

// jsonSummary is the serialized form of a crawl summary.
type jsonSummary struct {
	Total   int            `json:"total"`
	ByClass map[string]int `json:"byClass"`
	First   string         `json:"first,omitempty"`
	Last    string         `json:"last,omitempty"`
	Records []jsonRecord   `json:"records"`
}

// Write implements Writer.
func (w *JSONWriter) Write(summary *model.CrawlSummary) (int, error) {
	out := jsonSummary{
		Total:   summary.Total,
		ByClass: summary.ByClass,
		First:   formatTime(summary.First),
		Last:    formatTime(summary.Last),
		Records: make([]jsonRecord, 0, len(summary.Records)),
	}
	for _, r := range summary.Records {
		out.Records = append(out.Records, jsonRecord{
			URL:       r.URL,
			Timestamp: r.FormatTimestamp(),
			Status:    r.Status,
		})
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	return w.output.Write(data)
}

// formatTime formats a timestamp, returning "" for the zero value so
// empty summaries omit the field.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.TimestampLayout)
}
