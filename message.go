package converto

import "strings"

// DefaultMaxMessageLength is the outbound message budget for chat surfaces,
// kept under Discord's 2000-character limit with headroom for formatting.
const DefaultMaxMessageLength = 1900

// SplitMessage splits content into pieces of at most maxLength characters,
// breaking on newlines so paragraphs stay together. A single line longer
// than maxLength becomes its own piece.
func SplitMessage(content string, maxLength int) []string {
	if len(content) <= maxLength {
		return []string{content}
	}

	var chunks []string
	current := ""

	for _, paragraph := range strings.Split(content, "\n") {
		if len(current)+len(paragraph)+1 > maxLength {
			if current != "" {
				chunks = append(chunks, current)
			}
			current = paragraph
			continue
		}
		if current != "" {
			current += "\n"
		}
		current += paragraph
	}

	if current != "" {
		chunks = append(chunks, current)
	}

	return chunks
}
