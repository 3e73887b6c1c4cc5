// Package retrieval assembles prompt context from the chunk index.
//
// Assemble embeds a query, retrieves its nearest chunks, and returns a
// Context carrying the matched sources in descending-similarity order.
// Context.Empty is the branch point for "nothing found"; Context.Render
// produces the text block fed to the answer generator.
package retrieval
