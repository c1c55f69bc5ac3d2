// Package ffprobe shells out to ffprobe for media metadata.
//
// This package has no shuttle-specific dependencies and could be extracted
// as a standalone library.
//
// Primary entry point:
//   - Duration: executes ffprobe and returns the container duration in seconds
package ffprobe
