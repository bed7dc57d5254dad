package ingestion

import "errors"

var (
	// ErrNoData is returned when the feed has no header or no data rows.
	ErrNoData = errors.New("feed contains no data rows")

	// ErrPipelineReleased is returned when the pipeline has been released.
	ErrPipelineReleased = errors.New("pipeline has been released")
)
