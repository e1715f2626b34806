// Package trace records what the generator does while it runs.
//
// Enable it from the command line:
//
//	wrapgen gen --trace=- --trace-level=detail wrap.toml
//
// Levels gate which scopes are written:
//
//   - LevelOff: nothing
//   - LevelError: failures only
//   - LevelPhase: the run and its phases (collect, verify, emit)
//   - LevelDetail: one span per overload set
//   - LevelDebug: per-signature events as well
//
// The tracer travels through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "collect", 0)
//	defer span.End("")
package trace
