package services

import "context"

type contextKey string

const (
	chunkIDKey contextKey = "chunk_id"
	stageKey   contextKey = "stage"
	runIDKey   contextKey = "run_id"
)

// WithChunkID annotates context with the manifest chunk identifier.
func WithChunkID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, chunkIDKey, id)
}

// ChunkIDFromContext extracts the manifest chunk identifier if present.
func ChunkIDFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(chunkIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRunID annotates context with a correlation identifier for one pipeline run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
