package notion

import "strings"

// Wire types for the subset of the Notion API this client reads.

type pageObject struct {
	ID         string         `json:"id"`
	Properties pageProperties `json:"properties"`
}

type pageProperties struct {
	Name    titleProperty    `json:"Name"`
	Course  selectProperty   `json:"Course"`
	Indexed checkboxProperty `json:"Indexed"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

// PlainTitle joins the plain text of all title parts.
func (t titleProperty) PlainTitle() string {
	parts := make([]string, 0, len(t.Title))
	for _, part := range t.Title {
		parts = append(parts, part.PlainText)
	}
	return strings.Join(parts, "")
}

type selectProperty struct {
	Select struct {
		Name string `json:"name"`
	} `json:"select"`
}

type checkboxProperty struct {
	Checkbox bool `json:"checkbox"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type blockObject struct {
	Type      string `json:"type"`
	Paragraph *struct {
		RichText []richText `json:"rich_text"`
	} `json:"paragraph"`
}

type blockListResponse struct {
	Results    []blockObject `json:"results"`
	HasMore    bool          `json:"has_more"`
	NextCursor string        `json:"next_cursor"`
}

// extractText joins the plain text of paragraph blocks with newlines.
// Non-paragraph blocks (headings, dividers, embeds) are ignored.
func extractText(blocks []blockObject) string {
	var texts []string
	for _, block := range blocks {
		if block.Type != "paragraph" || block.Paragraph == nil {
			continue
		}
		for _, part := range block.Paragraph.RichText {
			texts = append(texts, part.PlainText)
		}
	}
	return strings.Join(texts, "\n")
}
