package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/catalog/core"
	"github.com/poiesic/catalog/ingestion"
)

// progressPrinter writes parse progress to a terminal, rewriting a single
// line on each report.
type progressPrinter struct {
	writer    io.Writer
	total     int
	startTime time.Time
	mu        sync.Mutex
}

var _ ingestion.ParseMonitor = (*progressPrinter)(nil)

func newProgressPrinter(writer io.Writer) *progressPrinter {
	return &progressPrinter{writer: writer}
}

func (p *progressPrinter) Start(totalRows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = totalRows
	p.startTime = time.Now()
}

func (p *progressPrinter) Progress(percent int, stats core.FeedStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report(percent, stats)
}

func (p *progressPrinter) Finish(stats core.FeedStats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report(100, stats)
	fmt.Fprintln(p.writer) // Print newline after final progress
}

// report prints the current progress. Must be called with lock held.
func (p *progressPrinter) report(percent int, stats core.FeedStats) {
	done := stats.Retained + stats.Skipped + stats.Errored
	elapsed := time.Since(p.startTime)
	rate := float64(done) / elapsed.Seconds()

	fmt.Fprintf(p.writer, "\rParsing: %d/%d (%d%%) - %.1f rows/s",
		done, p.total, percent, rate)
}
