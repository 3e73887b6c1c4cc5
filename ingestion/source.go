package ingestion

import (
	"context"

	"github.com/convertohq/converto/core"
)

// Source is the document store the pipeline pulls transcript pages from.
type Source interface {
	// ListUnindexedPages returns the pages not yet marked as indexed,
	// with their transcript content loaded.
	ListUnindexedPages(ctx context.Context) ([]*core.SourcePage, error)

	// MarkIndexed flags a page as indexed in the source so subsequent
	// listings skip it.
	MarkIndexed(ctx context.Context, pageID string) error
}
