package ingestion

import "github.com/poiesic/catalog/core"

// ParseMonitor provides hooks to observe an ingestion run.
// Implement this interface to drive progress UI while a feed is parsed.
//
// The contract: Start is called once before any row is decoded; Progress is
// called at fixed row intervals with a percentage that never decreases
// across calls; Finish is called exactly once at completion (100%) with the
// final statistics.
type ParseMonitor interface {
	Start(totalRows int)
	Progress(percent int, stats core.FeedStats)
	Finish(stats core.FeedStats)
}

// noopMonitor is a no-op implementation of ParseMonitor
type noopMonitor struct{}

var _ ParseMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int)                      {}
func (n *noopMonitor) Progress(_ int, _ core.FeedStats) {}
func (n *noopMonitor) Finish(_ core.FeedStats)          {}
