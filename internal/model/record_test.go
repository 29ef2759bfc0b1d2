package model

import (
	"testing"
	"time"
)

// TestCrawlRecordIsSuccess tests the success classification of records.
func TestCrawlRecordIsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "200 OK", status: 200, want: true},
		{name: "204 No Content", status: 204, want: true},
		{name: "301 redirect", status: 301, want: false},
		{name: "404 not found", status: 404, want: false},
		{name: "500 server error", status: 500, want: false},
		{name: "fetch failure", status: StatusFetchFailed, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := CrawlRecord{URL: "https://example.com", Status: tt.status}
			if got := r.IsSuccess(); got != tt.want {
				t.Errorf("IsSuccess() for status %d = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

// TestCrawlRecordStatusClass tests status classification labels.
func TestCrawlRecordStatusClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   string
	}{
		{status: 0, want: "failed"},
		{status: 200, want: "success"},
		{status: 302, want: "redirect"},
		{status: 403, want: "client_error"},
		{status: 503, want: "server_error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			r := CrawlRecord{Status: tt.status}
			if got := r.StatusClass(); got != tt.want {
				t.Errorf("StatusClass() for status %d = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

// TestCrawlRecordFormatTimestamp tests the persisted timestamp format.
func TestCrawlRecordFormatTimestamp(t *testing.T) {
	t.Parallel()

	r := CrawlRecord{
		Timestamp: time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
	if got := r.FormatTimestamp(); got != "2025-03-14 09:26:53" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "2025-03-14 09:26:53")
	}
}

// TestSessionStatusString tests the status enum names.
func TestSessionStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status SessionStatus
		want   string
	}{
		{status: StatusIdle, want: "Idle"},
		{status: StatusRunning, want: "Running"},
		{status: StatusStopped, want: "Stopped"},
		{status: SessionStatus(99), want: "Unknown"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.status.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNewCrawlSummary tests summary aggregation.
func TestNewCrawlSummary(t *testing.T) {
	t.Parallel()

	t.Run("empty record set", func(t *testing.T) {
		t.Parallel()

		s := NewCrawlSummary(nil)
		if s.Total != 0 {
			t.Errorf("expected total 0, got %d", s.Total)
		}
		if !s.First.IsZero() || !s.Last.IsZero() {
			t.Error("expected zero first/last timestamps for empty set")
		}
	})

	t.Run("counts by class and tracks time range", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		recs := []CrawlRecord{
			{URL: "https://a.com/", Timestamp: base, Status: 200},
			{URL: "https://a.com/x", Timestamp: base.Add(time.Minute), Status: 404},
			{URL: "https://a.com/y", Timestamp: base.Add(2 * time.Minute), Status: 200},
			{URL: "https://a.com/z", Timestamp: base.Add(3 * time.Minute), Status: 0},
		}

		s := NewCrawlSummary(recs)
		if s.Total != 4 {
			t.Errorf("expected total 4, got %d", s.Total)
		}
		if s.ByClass["success"] != 2 {
			t.Errorf("expected 2 success, got %d", s.ByClass["success"])
		}
		if s.ByClass["client_error"] != 1 {
			t.Errorf("expected 1 client_error, got %d", s.ByClass["client_error"])
		}
		if s.ByClass["failed"] != 1 {
			t.Errorf("expected 1 failed, got %d", s.ByClass["failed"])
		}
		if !s.First.Equal(base) {
			t.Errorf("expected first %v, got %v", base, s.First)
		}
		if !s.Last.Equal(base.Add(3 * time.Minute)) {
			t.Errorf("expected last %v, got %v", base.Add(3*time.Minute), s.Last)
		}
	})
}
