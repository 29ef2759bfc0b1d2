// Package model defines the core data types shared across SpiderBot.
//
// The types in this package are plain data with no behavior beyond
// formatting and classification helpers. They carry no synchronization;
// concurrency control lives in the crawler package.
package model
