package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/trace-bridge/bridge"
	"github.com/wippyai/trace-bridge/foreign"
	"github.com/wippyai/trace-bridge/tracing"
	"github.com/wippyai/trace-bridge/wasm"
)

func main() {
	var (
		demo        = flag.String("demo", "simple", "Demo workload: simple or nested")
		wasmFile    = flag.String("wasm", "", "Path to a guest wasm module to use as the foreign object")
		verbose     = flag.Bool("v", false, "Verbose logging (includes swallowed foreign errors)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		bridge.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*wasmFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*demo, *wasmFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(demo, wasmFile string) error {
	obj, cleanup, err := buildObject(wasmFile, func(line string) {
		fmt.Println(line)
	})
	if err != nil {
		return err
	}
	defer cleanup()

	tracer := tracing.New(tracing.WithLayer(bridge.New(obj)))
	defer tracer.Close()

	return runDemo(tracer, demo)
}

// buildObject wires the foreign side: a guest wasm module when a path
// is given, otherwise the built-in printing observer.
func buildObject(wasmFile string, emit func(string)) (foreign.Object, func(), error) {
	if wasmFile == "" {
		obs := &printObserver{emit: emit}
		return foreign.Bind(foreign.NewSerialRuntime(), obs), func() {}, nil
	}

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read guest: %w", err)
	}
	ctx := context.Background()
	rt, err := wasm.Open(ctx, data, &wasm.Config{Name: "observer"})
	if err != nil {
		return nil, nil, fmt.Errorf("load guest: %w", err)
	}
	return rt.Object(), func() { _ = rt.Close(ctx) }, nil
}

func runDemo(tracer *tracing.Tracer, demo string) error {
	switch demo {
	case "simple":
		demoFunc(context.Background(), tracer, 1337, "foo")
	case "nested":
		ctx, outer := tracer.StartSpan(context.Background(), "outer",
			tracing.WithLevel(tracing.LevelWarn))
		demoFunc(ctx, tracer, 1337, "bar")
		outer.End()
	default:
		return fmt.Errorf("unknown demo %q", demo)
	}
	return nil
}

// demoFunc is the instrumented workload: two creation-time fields, one
// declared field, one event, one record.
func demoFunc(ctx context.Context, tracer *tracing.Tracer, arg1 int64, arg2 string) {
	ctx, span := tracer.StartSpan(ctx, "func",
		tracing.WithFields(tracing.Int("arg1", arg1), tracing.Debug("arg2", arg2)),
		tracing.WithDeclared("data"))
	defer span.End()

	tracer.Event(ctx, tracing.LevelInfo, "About to record something")
	span.Record(tracing.Str("data", "some data"))
}

// printObserver is the built-in foreign object: it emits one line per
// hook and threads small integer states.
type printObserver struct {
	emit func(string)
	mu   sync.Mutex
	next int
}

func (o *printObserver) OnNewSpan(spanAttrs, spanID string) any {
	o.mu.Lock()
	o.next++
	state := o.next
	o.mu.Unlock()
	o.emit(fmt.Sprintf("on_new_span  state=%-3d id=%s attrs=%s", state, spanID, spanAttrs))
	return state
}

func (o *printObserver) OnEvent(event string, state any) {
	o.emit(fmt.Sprintf("on_event     state=%-3v %s", fmtState(state), event))
}

func (o *printObserver) OnRecord(spanID, values string, state any) {
	o.emit(fmt.Sprintf("on_record    state=%-3v id=%s values=%s", fmtState(state), spanID, values))
}

func (o *printObserver) OnClose(spanID string, state any) {
	o.emit(fmt.Sprintf("on_close     state=%-3v id=%s", fmtState(state), spanID))
}

func fmtState(state any) any {
	if state == nil {
		return "-"
	}
	return state
}
