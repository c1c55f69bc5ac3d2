// Package transform submits chunk prompts to a model API and returns the
// transformed text.
//
// The capability is a single call: prompt in, text out. Two wire protocols
// implement it (chat-completions and messages envelopes), selected by the
// api_format configuration flag; callers never see the difference.
// Transient failures (rate limits, server errors, timeouts, empty
// responses) are retried with exponential backoff, honoring Retry-After
// when the server provides one.
package transform
