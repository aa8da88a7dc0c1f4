// Package errors provides structured error types for the bridge.
//
// Every error carries a Phase (where in processing it occurred) and a
// Kind (what went wrong), plus optional context: the bridged hook name,
// a field path, the offending value, and an underlying cause.
//
// Errors can be matched with errors.Is on Phase and Kind:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindHandlerFailed}) {
//	    // a foreign handler failed
//	}
//
// Construct errors with the Builder for full control:
//
//	err := errors.New(errors.PhaseResolve, errors.KindBadSignature).
//	    Hook("on_new_span").
//	    Detail("too many results").
//	    Build()
//
// or use the convenience constructors for common patterns.
package errors
