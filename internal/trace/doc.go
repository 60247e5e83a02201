// Package trace records what the checker is doing while it runs.
//
// Enable tracing via command-line flags:
//
//	cefmt check --trace=- --trace-level=detail ./...
//
// Tracers:
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events kept in memory
//   - MultiTracer: fans out to several tracers
//
// Levels gate scopes: LevelPhase shows driver and pass boundaries,
// LevelDetail adds one span per file, LevelDebug adds one event per
// format call site.
//
// Tracers and the current parent span travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeDriver, "check")
//	defer span.End("")
//
// Error events (Fail) pass from LevelError up regardless of scope.
package trace
