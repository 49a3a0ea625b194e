package zx

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// ErrInvalidComponent is returned when a deferred component has no callable
// function or the function has an unsupported signature.
var ErrInvalidComponent = errors.New("zx: invalid component function")

// EvalError reports a component function that returned an error.
type EvalError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("zx: component %s: %v", e.Name, e.Err)
}

// Unwrap returns the component's error.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// Options configures a component invocation. They come from builtin
// attributes at the call site (@caching, @key).
type Options struct {
	// Caching is a duration string ("10s", "5m") for which the rendered
	// output may be reused by the string renderer. Empty disables caching.
	Caching string

	// Key overrides the cache key. Defaults to the component name plus props.
	Key string
}

// Thunk is a deferred component invocation: a call function and the props
// it will be called with.
type Thunk struct {
	Name    string
	Props   any
	Call    func(props any) (Component, error)
	Options Options
}

// Lazy defers the invocation of a component function until render time.
//
// fn must be one of:
//
//	func(P) Component
//	func(P) (Component, error)
//	func(P) *Component          // nil renders nothing
//	func(P) (*Component, error)
//	func() Component
func Lazy[P any](fn any, props P, opts ...Options) Component {
	t := &Thunk{
		Name:  funcName(fn),
		Props: props,
	}
	if len(opts) > 0 {
		t.Options = opts[len(opts)-1]
	}

	switch f := fn.(type) {
	case func(P) Component:
		t.Call = func(p any) (Component, error) { return f(p.(P)), nil }
	case func(P) (Component, error):
		t.Call = func(p any) (Component, error) { return f(p.(P)) }
	case func(P) *Component:
		t.Call = func(p any) (Component, error) { return deref(f(p.(P))), nil }
	case func(P) (*Component, error):
		t.Call = func(p any) (Component, error) {
			c, err := f(p.(P))
			return deref(c), err
		}
	case func() Component:
		t.Call = func(any) (Component, error) { return f(), nil }
	default:
		t.Call = func(any) (Component, error) {
			return Component{}, fmt.Errorf("%w: %T", ErrInvalidComponent, fn)
		}
	}

	return Component{Kind: KindFunc, Thunk: t}
}

func deref(c *Component) Component {
	if c == nil {
		return Component{}
	}
	return *c
}

// funcName returns the unqualified name of a function value.
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", fn)
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "anonymous"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Key formats a @key value as a cache key.
func Key(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
