package ingestion

import "fmt"

// PageFailure records a page that could not be fully processed.
type PageFailure struct {
	PageID string
	Title  string
	Err    error
}

// Report summarizes one ingestion run. The pipeline never aborts a batch on
// a page failure; everything that went wrong is recorded here instead.
type Report struct {
	// Succeeded counts pages whose chunks were written and that were
	// marked indexed in the source.
	Succeeded int

	// Skipped counts pages that were already indexed.
	Skipped int

	// Failed lists pages whose chunking, embedding or storage write
	// failed. No chunks from these pages were written.
	Failed []PageFailure

	// MarkFailed lists pages whose chunks were written but whose indexed
	// flag could not be set in the source. These pages will be picked up
	// again on the next run and re-written; the upsert makes that safe.
	MarkFailed []PageFailure
}

// Total returns the number of pages the run looked at.
func (r *Report) Total() int {
	return r.Succeeded + r.Skipped + len(r.Failed) + len(r.MarkFailed)
}

// String renders a one-line summary suitable for logs and CLI output.
func (r *Report) String() string {
	return fmt.Sprintf("pages=%d succeeded=%d skipped=%d failed=%d mark_failed=%d",
		r.Total(), r.Succeeded, r.Skipped, len(r.Failed), len(r.MarkFailed))
}
