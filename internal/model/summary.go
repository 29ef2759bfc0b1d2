package model

import "time"

// CrawlSummary aggregates a set of crawl records for reporting.
type CrawlSummary struct {
	// Total is the number of records in the set.
	Total int

	// ByClass counts records per status class (see CrawlRecord.StatusClass).
	ByClass map[string]int

	// First and Last are the earliest and latest record timestamps.
	// Both are zero when the set is empty.
	First time.Time
	Last  time.Time

	// Records holds the summarized records in storage order.
	Records []CrawlRecord
}

// NewCrawlSummary builds a summary from records in storage order.
func NewCrawlSummary(records []CrawlRecord) *CrawlSummary {
	s := &CrawlSummary{
		Total:   len(records),
		ByClass: make(map[string]int),
		Records: records,
	}

	for _, r := range records {
		s.ByClass[r.StatusClass()]++

		if s.First.IsZero() || r.Timestamp.Before(s.First) {
			s.First = r.Timestamp
		}
		if r.Timestamp.After(s.Last) {
			s.Last = r.Timestamp
		}
	}

	return s
}
