// Package chunker splits transcript text into bounded token-length segments
// with overlap.
//
// Splits prefer natural boundaries (paragraph break, line break, sentence
// punctuation, word boundary) and only fall back to finer separators when a
// candidate piece still exceeds the target size. Length is measured in
// model-specific sub-word tokens via a Tokenizer, not in characters.
package chunker
