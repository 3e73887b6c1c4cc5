package chunker

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer converts text to and from model-specific sub-word tokens.
// Implementations must round-trip: Decode(Encode(s)) == s for valid UTF-8.
type Tokenizer interface {
	// Encode converts text into a sequence of token IDs.
	Encode(text string) []int

	// Decode converts a sequence of token IDs back into text.
	Decode(tokens []int) string
}

// tiktokenTokenizer wraps a tiktoken BPE encoding.
type tiktokenTokenizer struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenTokenizer creates a Tokenizer for the given model name.
// Returns ErrTokenizer if the model has no known encoding.
func NewTiktokenTokenizer(model string) (Tokenizer, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: model %q: %v", ErrTokenizer, model, err)
	}
	return &tiktokenTokenizer{enc: enc}, nil
}

func (t *tiktokenTokenizer) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

func (t *tiktokenTokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
