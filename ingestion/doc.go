// Package ingestion turns a raw delimited product feed into typed catalog
// records.
//
// The Parser tolerates malformed rows: quoting is resolved leniently, a row
// that fails to decode is counted and skipped, and only a feed with no
// usable data at all fails the parse. Progress is reported through a
// ParseMonitor at fixed row intervals and once at completion.
//
// The Pipeline wraps the Parser with an optional snapshot cache and a
// worker pool so an interactive caller can run ingestion in the background.
// At most one parse is in flight at a time.
package ingestion
