package catalog

import (
	"context"
	"sync/atomic"
	"time"
)

// Invoker is the shape every adapter implements: given call arguments,
// produce a result value (any of the shapes EncodeResult understands) or
// fail.
type Invoker func(ctx context.Context, args Arguments) (interface{}, error)

// Statistics are owned by a Tool and updated only through ExecuteTracked.
// Counters are atomic so concurrent calls never tear an increment (§5, §9).
type Statistics struct {
	executionCount  atomic.Int64
	errorCount      atomic.Int64
	totalDurationMs atomic.Int64
}

func (s *Statistics) ExecutionCount() int64  { return s.executionCount.Load() }
func (s *Statistics) ErrorCount() int64      { return s.errorCount.Load() }
func (s *Statistics) TotalDurationMs() int64 { return s.totalDurationMs.Load() }

// Tool pairs Metadata with an Invoker and the mutable statistics that accrue
// over its calls.
type Tool struct {
	Metadata Metadata
	invoke   Invoker
	stats    Statistics
}

// NewTool builds a live Tool. It does not derive a schema: a Tool whose
// metadata carries no InputSchema has none. Each adapter factory builds its
// InputSchema itself by calling DeriveSchema on its argument struct; the
// Loader only overrides it with a schema from configuration.
func NewTool(metadata Metadata, fn Invoker) *Tool {
	return &Tool{Metadata: metadata, invoke: fn}
}

func (t *Tool) Name() string        { return t.Metadata.Name }
func (t *Tool) Stats() *Statistics  { return &t.stats }

// MatchesQuery is a case-insensitive substring match on name, description,
// tags, and category (§4.1).
func (t *Tool) MatchesQuery(q string) bool { return matchesQuery(t.Metadata, q) }

func (t *Tool) Descriptor() Descriptor { return t.Metadata.Descriptor() }

// Execute invokes the tool directly, without statistics tracking. Most
// callers want ExecuteTracked; Execute exists so the dispatcher can
// distinguish "tool ran and raised" from "tool could not be found/promoted"
// at the call site.
func (t *Tool) Execute(ctx context.Context, args Arguments) (interface{}, error) {
	if err := validateRequired(t.Metadata.InputSchema, args); err != nil {
		return nil, err
	}
	if t.invoke == nil {
		return nil, NewToolError(KindAdapterFailure, "tool has no implementation bound")
	}
	return t.invoke(ctx, args)
}

// ExecuteTracked wraps Execute, measuring wall-clock duration and updating
// exactly one of ExecutionCount or ErrorCount per call (§8.6). The error,
// if any, is never swallowed.
func (t *Tool) ExecuteTracked(ctx context.Context, args Arguments) (interface{}, error) {
	start := time.Now()
	result, err := t.Execute(ctx, args)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		t.stats.errorCount.Add(1)
		return nil, err
	}
	t.stats.executionCount.Add(1)
	t.stats.totalDurationMs.Add(elapsed)
	return result, nil
}
