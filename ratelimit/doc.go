// Package ratelimit provides a per-caller sliding-window rate limiter for
// the query surface.
package ratelimit
