// Package thread tracks per-thread conversation state: the pinned lesson, a
// rolling message history, and the full pinned-lesson text.
//
// State lives only in memory and is keyed by an opaque thread identifier
// supplied by the chat surface. Archiving a thread removes everything about
// it atomically.
package thread
