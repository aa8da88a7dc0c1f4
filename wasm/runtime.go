package wasm

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/wippyai/trace-bridge/errors"
	"github.com/wippyai/trace-bridge/foreign"
)

// Runtime hosts one guest module. It implements foreign.Runtime: its
// lock serializes all guest entry, calls and memory staging alike.
type Runtime struct {
	rt     wazero.Runtime
	mod    api.Module
	alloc  api.Function
	mu     sync.Mutex
	closed bool
}

// Config holds configuration for guest loading.
type Config struct {
	// Name sets the instantiated module's name.
	Name string

	// DisableWASI skips instantiating wasi_snapshot_preview1. Most
	// guest toolchains need WASI even for freestanding modules.
	DisableWASI bool
}

// Open compiles and instantiates a guest module. The guest must export
// a linear memory and an alloc function.
func Open(ctx context.Context, wasmBytes []byte, cfg *Config) (*Runtime, error) {
	if len(wasmBytes) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty module")
	}

	rt := wazero.NewRuntime(ctx)
	if cfg == nil || !cfg.DisableWASI {
		wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	}

	modCfg := wazero.NewModuleConfig()
	if cfg != nil && cfg.Name != "" {
		modCfg = modCfg.WithName(cfg.Name)
	}

	mod, err := rt.InstantiateWithConfig(ctx, wasmBytes, modCfg)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Cause(err).
			Detail("instantiate guest module").
			Build()
	}

	if mod.Memory() == nil {
		_ = rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "guest exports no memory")
	}
	alloc := mod.ExportedFunction("alloc")
	if alloc == nil {
		_ = rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "guest exports no alloc")
	}

	return &Runtime{rt: rt, mod: mod, alloc: alloc}, nil
}

func (r *Runtime) Lock()   { r.mu.Lock() }
func (r *Runtime) Unlock() { r.mu.Unlock() }

// Close releases the guest instance. In-flight calls finish first.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.rt.Close(ctx)
}

// Object returns the guest's exports as a foreign callback object.
func (r *Runtime) Object() foreign.Object {
	return guestObject{r: r}
}

type guestObject struct {
	r *Runtime
}

func (o guestObject) Runtime() foreign.Runtime {
	return o.r
}

func (o guestObject) Method(name string) (foreign.Func, bool) {
	fn := o.r.mod.ExportedFunction(name)
	if fn == nil {
		return nil, false
	}
	// An export with more than one result cannot carry our calling
	// convention; treat it like a missing method.
	if len(fn.Definition().ResultTypes()) > 1 {
		return nil, false
	}
	return func(args ...any) (any, error) {
		return o.r.call(name, fn, args)
	}, true
}

// call lowers args onto the guest's parameter stack and invokes the
// export. Caller holds the runtime lock.
func (r *Runtime) call(hook string, fn api.Function, args []any) (any, error) {
	if r.closed {
		return nil, errors.Closed(errors.PhaseInvoke, "guest runtime closed")
	}

	ctx := context.Background()
	stack := make([]uint64, 0, len(args)*2)
	for _, a := range args {
		switch v := a.(type) {
		case string:
			ptr, n, err := r.writeString(ctx, v)
			if err != nil {
				return nil, err
			}
			stack = append(stack, uint64(ptr), uint64(n))
		case nil:
			stack = append(stack, 0)
		case int64:
			stack = append(stack, uint64(v))
		case uint64:
			stack = append(stack, v)
		default:
			return nil, errors.TypeMismatch(errors.PhaseState, hook, "i64 state or string", fmt.Sprintf("%T", a))
		}
	}

	if want := len(fn.Definition().ParamTypes()); want != len(stack) {
		return nil, errors.BadSignature(hook,
			fmt.Sprintf("guest takes %d params, call lowers to %d", want, len(stack)))
	}

	out, err := fn.Call(ctx, stack...)
	if err != nil {
		return nil, errors.HandlerFailed(hook, err)
	}
	if len(out) == 0 || out[0] == 0 {
		// Zero is the guest's way of declining to hand back state.
		return nil, nil
	}
	return int64(out[0]), nil
}

// writeString stages s in guest memory and returns (ptr, len).
func (r *Runtime) writeString(ctx context.Context, s string) (uint32, uint32, error) {
	if len(s) == 0 {
		return 0, 0, nil
	}

	res, err := r.alloc.Call(ctx, uint64(len(s)))
	if err != nil {
		return 0, 0, errors.New(errors.PhaseInvoke, errors.KindAllocation).
			Cause(err).
			Detail("guest alloc failed").
			Build()
	}
	ptr := uint32(res[0])
	if !r.mod.Memory().Write(ptr, []byte(s)) {
		return 0, 0, errors.AllocationFailed(errors.PhaseInvoke, uint32(len(s)))
	}
	return ptr, uint32(len(s)), nil
}
