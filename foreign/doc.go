// Package foreign abstracts an independently-running callback object
// owned by another runtime.
//
// An Object resolves methods by name, the way a dynamic runtime resolves
// attributes: a method either exists (yielding a durable Func) or it
// does not. A Runtime is the object's execution domain; foreign runtimes
// permit only one in-flight call system-wide, so every Func invocation
// must happen between Lock and Unlock on the object's Runtime.
//
// Bind adapts an in-process Go value into an Object, exposing its
// exported methods under snake_case names (OnNewSpan becomes
// "on_new_span"). Out-of-process embodiments live elsewhere; see the
// wasm package for WebAssembly guests.
package foreign
