package chunker

import (
	"log/slog"
	"strings"
)

const (
	// DefaultTargetTokens is the default chunk size in tokens.
	DefaultTargetTokens = 500

	// DefaultOverlapTokens is the default number of trailing tokens a chunk
	// shares with its successor.
	DefaultOverlapTokens = 100
)

// defaultSeparators is the cascading boundary preference, coarsest first.
// The empty string means "cut the token stream directly".
var defaultSeparators = []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}

// Chunker splits text into token-bounded, overlapping segments.
type Chunker struct {
	tokenizer     Tokenizer
	targetTokens  int
	overlapTokens int
	separators    []string
	logger        *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker) error

// WithTargetTokens sets the chunk size in tokens.
// Default is DefaultTargetTokens.
func WithTargetTokens(n int) Option {
	return func(c *Chunker) error {
		if n <= 0 {
			return ErrInvalidTargetSize
		}
		c.targetTokens = n
		return nil
	}
}

// WithOverlapTokens sets how many trailing tokens of a chunk are repeated at
// the start of the next chunk. Must be smaller than the target size.
// Default is DefaultOverlapTokens.
func WithOverlapTokens(n int) Option {
	return func(c *Chunker) error {
		if n < 0 {
			return ErrInvalidOverlap
		}
		c.overlapTokens = n
		return nil
	}
}

// WithSeparators overrides the cascading separator preference.
func WithSeparators(seps []string) Option {
	return func(c *Chunker) error {
		c.separators = seps
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Chunker using the given tokenizer.
func New(tokenizer Tokenizer, opts ...Option) (*Chunker, error) {
	if tokenizer == nil {
		return nil, ErrTokenizerRequired
	}

	c := &Chunker{
		tokenizer:     tokenizer,
		targetTokens:  DefaultTargetTokens,
		overlapTokens: DefaultOverlapTokens,
		separators:    defaultSeparators,
		logger:        slog.Default().With("component", "chunker"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.overlapTokens >= c.targetTokens {
		return nil, ErrInvalidOverlap
	}

	return c, nil
}

// Chunk splits text into segments of at most the target token size, each
// segment after the first prefixed with the trailing overlap tokens of its
// predecessor. Concatenating the non-overlap portions reconstructs the input
// exactly; no text is ever dropped.
func (c *Chunker) Chunk(text string) ([]string, error) {
	if text == "" {
		return []string{}, nil
	}

	pieces := c.split(text, 0)
	c.logger.Debug("split text into pieces", "pieces", len(pieces), "tokens", c.count(text))

	if c.overlapTokens == 0 || len(pieces) < 2 {
		return pieces, nil
	}

	// Prefix every chunk after the first with the decoded tail of the
	// previous piece.
	chunks := make([]string, len(pieces))
	chunks[0] = pieces[0]
	for i := 1; i < len(pieces); i++ {
		prev := c.tokenizer.Encode(pieces[i-1])
		n := c.overlapTokens
		if n > len(prev) {
			n = len(prev)
		}
		chunks[i] = c.tokenizer.Decode(prev[len(prev)-n:]) + pieces[i]
	}

	return chunks, nil
}

// split recursively divides text at the coarsest separator that yields pieces
// of acceptable size, then greedily merges adjacent pieces back up to the
// target. Separators stay attached to the preceding piece, so the returned
// pieces concatenate to the input.
func (c *Chunker) split(text string, sepIdx int) []string {
	if c.count(text) <= c.targetTokens {
		return []string{text}
	}

	if sepIdx >= len(c.separators) || c.separators[sepIdx] == "" {
		return c.hardSplit(text)
	}

	sep := c.separators[sepIdx]
	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator not present, try the next finer one.
		return c.split(text, sepIdx+1)
	}

	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if c.count(part) > c.targetTokens {
			pieces = append(pieces, c.split(part, sepIdx+1)...)
		} else {
			pieces = append(pieces, part)
		}
	}

	return c.merge(pieces)
}

// merge greedily combines adjacent pieces while the combined token count
// stays within the target. Token counts are measured on the merged candidate
// because BPE token counts are not additive across boundaries.
func (c *Chunker) merge(pieces []string) []string {
	var merged []string
	current := ""
	for _, piece := range pieces {
		if current == "" {
			current = piece
			continue
		}
		candidate := current + piece
		if c.count(candidate) <= c.targetTokens {
			current = candidate
		} else {
			merged = append(merged, current)
			current = piece
		}
	}
	if current != "" {
		merged = append(merged, current)
	}
	return merged
}

// hardSplit cuts the token stream into target-sized windows. Last resort when
// no separator produces acceptable pieces.
func (c *Chunker) hardSplit(text string) []string {
	tokens := c.tokenizer.Encode(text)
	var pieces []string
	for start := 0; start < len(tokens); start += c.targetTokens {
		end := start + c.targetTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		pieces = append(pieces, c.tokenizer.Decode(tokens[start:end]))
	}
	return pieces
}

func (c *Chunker) count(text string) int {
	return len(c.tokenizer.Encode(text))
}
