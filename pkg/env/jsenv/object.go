//go:build js && wasm

package jsenv

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/denelabs/walletbridge/pkg/env"
)

// Object is a handle on a JS object or function
type Object struct {
	v js.Value
}

var _ env.Object = (*Object)(nil)

// Wrap returns a handle on v
func Wrap(v js.Value) *Object {
	return &Object{v: v}
}

// Value returns the wrapped JS value
func (o *Object) Value() js.Value {
	return o.v
}

func (o *Object) Get(key string) any {
	return toGo(o.v.Get(key))
}

func (o *Object) Callable(key string) bool {
	return o.v.Get(key).Type() == js.TypeFunction
}

func (o *Object) Call(ctx context.Context, method string, args ...any) (result any, err error) {
	defer recoverJS(&err)

	if !o.Callable(method) {
		return nil, fmt.Errorf("%s is not a function", method)
	}
	v, err := await(ctx, o.v.Call(method, toJSArgs(args)...))
	if err != nil {
		return nil, err
	}
	return toGo(v), nil
}

func (o *Object) Construct(ctx context.Context, class string, args ...any) (obj env.Object, err error) {
	defer recoverJS(&err)

	ctor := o.v.Get(class)
	if ctor.Type() != js.TypeFunction {
		return nil, fmt.Errorf("%s is not a constructor", class)
	}
	return Wrap(ctor.New(toJSArgs(args)...)), nil
}

// MarshalJSON delegates to JSON.stringify
func (o *Object) MarshalJSON() (b []byte, err error) {
	defer recoverJS(&err)

	s := js.Global().Get("JSON").Call("stringify", o.v)
	if s.Type() != js.TypeString {
		return []byte("null"), nil
	}
	return []byte(s.String()), nil
}

// String calls toString on the object
func (o *Object) String() string {
	if o.v.Get("toString").Type() != js.TypeFunction {
		return o.v.String()
	}
	return o.v.Call("toString").String()
}

// await settles v if it is a thenable, otherwise returns it as is
func await(ctx context.Context, v js.Value) (js.Value, error) {
	if v.Type() != js.TypeObject || v.Get("then").Type() != js.TypeFunction {
		return v, nil
	}

	type settled struct {
		v   js.Value
		err error
	}
	done := make(chan settled, 1)
	onFulfilled := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{v: arg0(args)}
		return nil
	})
	onRejected := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- settled{err: rejection(arg0(args))}
		return nil
	})
	v.Call("then", onFulfilled, onRejected)

	select {
	case <-ctx.Done():
		// the callbacks stay alive so a late settlement has somewhere to go
		return js.Undefined(), ctx.Err()
	case s := <-done:
		onFulfilled.Release()
		onRejected.Release()
		return s.v, s.err
	}
}

func arg0(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

// rejection turns a promise rejection reason into an error
func rejection(reason js.Value) error {
	if reason.Type() == js.TypeObject {
		if msg := reason.Get("message"); msg.Type() == js.TypeString {
			return errors.New(msg.String())
		}
	}
	if reason.Type() == js.TypeString {
		return errors.New(reason.String())
	}
	b, _ := Wrap(reason).MarshalJSON()
	return fmt.Errorf("promise rejected: %s", b)
}

// recoverJS converts a thrown JS exception into err
func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = errors.New(jsErr.Value.Get("message").String())
		return
	}
	panic(r)
}

func toGo(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	case js.TypeObject:
		if js.Global().Get("Array").Call("isArray", v).Bool() {
			out := make([]any, v.Length())
			for i := range out {
				out[i] = toGo(v.Index(i))
			}
			return out
		}
		return Wrap(v)
	default:
		return Wrap(v)
	}
}

func toJS(v any) any {
	switch t := v.(type) {
	case *Object:
		return t.v
	case map[string]any:
		obj := js.Global().Get("Object").New()
		for k, val := range t {
			obj.Set(k, toJS(val))
		}
		return obj
	case []any:
		arr := js.Global().Get("Array").New(len(t))
		for i, val := range t {
			arr.SetIndex(i, toJS(val))
		}
		return arr
	default:
		return v
	}
}

func toJSArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = toJS(a)
	}
	return out
}
