package trace

import "context"

// ctxState is what a context carries for tracing: the tracer and the span
// that new spans attach to.
type ctxState struct {
	tracer Tracer
	parent uint64
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxState{tracer: t})
}

// ParentOf returns the span that Start last recorded in ctx, 0 for none.
func ParentOf(ctx context.Context) uint64 {
	return stateOf(ctx).parent
}

// Start begins a span under ParentOf(ctx) and returns a context in which
// the new span is the parent. A span dropped by the tracer level leaves
// the context as is, so its children attach one level up.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	st := stateOf(ctx)
	span := Begin(st.tracer, scope, name, st.parent)
	if span.ID() == 0 {
		return span, ctx
	}
	st.parent = span.ID()
	return span, context.WithValue(ctx, ctxKey{}, st)
}
