package foreign

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/wippyai/trace-bridge/errors"
)

// Bind exposes the exported methods of impl as a foreign Object living
// in rt. Method names are converted from PascalCase to snake_case
// (OnNewSpan -> "on_new_span").
//
// Supported method shapes: non-variadic, any number of parameters, with
// results of either nothing, (T), (error), or (T, error). A method whose
// shape cannot be adapted is simply not exposed, the same as a missing
// attribute on a dynamic object. Parameter values are matched by
// assignability at call time; a mismatch surfaces as an error from the
// call, never as a coercion.
func Bind(rt Runtime, impl any) Object {
	obj := &boundObject{
		rt:      rt,
		methods: make(map[string]Func),
	}

	v := reflect.ValueOf(impl)
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		name := snakeCase(m.Name)
		fn, err := adaptMethod(name, v.Method(i))
		if err != nil {
			continue
		}
		obj.methods[name] = fn
	}
	return obj
}

type boundObject struct {
	rt      Runtime
	methods map[string]Func
}

func (o *boundObject) Runtime() Runtime {
	return o.rt
}

func (o *boundObject) Method(name string) (Func, bool) {
	fn, ok := o.methods[name]
	return fn, ok
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func adaptMethod(name string, mv reflect.Value) (Func, error) {
	mt := mv.Type()
	if mt.IsVariadic() {
		return nil, errors.BadSignature(name, "variadic parameters")
	}

	numOut := mt.NumOut()
	if numOut > 2 {
		return nil, errors.BadSignature(name, fmt.Sprintf("%d results", numOut))
	}
	lastIsErr := numOut > 0 && mt.Out(numOut-1) == errorType
	if numOut == 2 && !lastIsErr {
		return nil, errors.BadSignature(name, "second result is not error")
	}
	hasState := numOut == 2 || (numOut == 1 && !lastIsErr)

	return func(args ...any) (any, error) {
		if len(args) != mt.NumIn() {
			return nil, errors.New(errors.PhaseInvoke, errors.KindBadSignature).
				Hook(name).
				Detail("call with %d args, method takes %d", len(args), mt.NumIn()).
				Build()
		}

		in := make([]reflect.Value, len(args))
		for i, a := range args {
			pt := mt.In(i)
			if a == nil {
				in[i] = reflect.Zero(pt)
				continue
			}
			av := reflect.ValueOf(a)
			if !av.Type().AssignableTo(pt) {
				return nil, errors.TypeMismatch(errors.PhaseInvoke, name, pt.String(), av.Type().String())
			}
			in[i] = av
		}

		out, err := callRecovered(name, mv, in)
		if err != nil {
			return nil, err
		}

		if lastIsErr {
			if e := out[numOut-1]; !e.IsNil() {
				return nil, errors.HandlerFailed(name, e.Interface().(error))
			}
		}
		if hasState {
			return out[0].Interface(), nil
		}
		return nil, nil
	}, nil
}

// callRecovered isolates handler panics: a foreign object that throws
// must not take down the instrumentation path.
func callRecovered(name string, mv reflect.Value, in []reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.HandlerFailed(name, fmt.Errorf("panic: %v", r))
		}
	}()
	return mv.Call(in), nil
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
