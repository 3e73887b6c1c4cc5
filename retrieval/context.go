package retrieval

import (
	"fmt"
	"strings"
)

// NoResultsNotice is the user-facing text rendered when a query matched
// nothing in the knowledge base. Callers that need to branch on emptiness
// should use Context.Empty, not this string.
const NoResultsNotice = "No relevant information found in the knowledge base."

// contextPreamble introduces the excerpt blocks in the rendered context.
const contextPreamble = "Using the following document excerpts as context:\n---\n"

// Source is one retrieved excerpt with its provenance.
type Source struct {
	Course string
	Title  string
	Text   string
	Score  float32
}

// Context is the assembled retrieval result for a query. Sources are in
// descending-similarity order. A Context with no sources is a first-class
// value; Empty distinguishes it without string inspection.
type Context struct {
	Sources []Source
}

// Empty reports whether the query matched nothing.
func (c *Context) Empty() bool {
	return len(c.Sources) == 0
}

// Render produces the prompt-ready text block: the instruction preamble
// followed by one labeled block per source. An empty context renders as
// NoResultsNotice.
func (c *Context) Render() string {
	if c.Empty() {
		return NoResultsNotice
	}

	var sb strings.Builder
	sb.WriteString(contextPreamble)
	for i, source := range c.Sources {
		fmt.Fprintf(&sb, "Source %d (Course: %s, Title: %s):\n%s\n---\n",
			i+1, source.Course, source.Title, source.Text)
	}
	return sb.String()
}
