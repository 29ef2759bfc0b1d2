// Package storage persists crawl records across sessions.
//
// The Sink interface is the only storage contract the crawl engine
// knows about: append one record, load everything back, discard
// everything. Two implementations are provided.
//
// CSVStore writes the reference interchange format: a UTF-8 CSV file
// with header "URL,Timestamp,Status", one record per line, opened in
// append mode so repeated sessions accumulate into one file.
//
// SQLiteStore keeps the same records in a single-table SQLite database
// via modernc.org/sqlite (pure Go, no cgo). It is the better choice for
// long-running crawls where the record set no longer fits comfortably
// in a flat file.
//
// Open picks the implementation from the storage target's file
// extension, so the rest of the program never branches on format.
package storage
