// Package wasm hosts a WebAssembly guest module as a foreign callback
// object.
//
// The guest's exported functions form the callback set; a missing export
// behaves exactly like a missing method on any foreign object. Strings
// cross the boundary through guest memory (staged with the guest's
// exported allocator) and state crosses as an i64 value, 0 meaning
// absent. Expected guest ABI:
//
//	alloc(size: i32) -> i32
//	on_new_span(attrs_ptr, attrs_len, id_ptr, id_len: i32) -> i64
//	on_event(event_ptr, event_len: i32, state: i64)
//	on_record(id_ptr, id_len, values_ptr, values_len: i32, state: i64)
//	on_close(id_ptr, id_len: i32, state: i64)
//
// Module instances are not safe for concurrent invocation, so the
// Runtime's lock is the guest's global execution lock; the bridge holds
// it for the duration of each call, including memory staging.
//
// Reclaiming staged strings is the guest's concern: guests typically
// reset their allocator per call or run their own collector.
package wasm
