// Package notion reads transcript pages from a Notion database.
//
// The client covers exactly the surface the ingestion pipeline needs: a
// database query for transcript pages, paginated block listing to assemble
// page text from paragraph blocks, and a checkbox write-back that marks a
// page as indexed. It implements ingestion.Source.
package notion
