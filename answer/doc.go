// Package answer generates user-facing answers from assembled context.
//
// The Composer builds the two-message prompt (fixed system instruction plus
// a context-and-question user message) and calls the chat model. Generation
// failures are a deliberate boundary: they degrade to a displayable error
// message and never crash the caller.
package answer
