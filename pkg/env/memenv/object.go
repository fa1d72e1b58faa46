// Package memenv is an in-memory host environment. It backs the wallet and
// submission tests and can script any provider or SDK shape.
package memenv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/denelabs/walletbridge/pkg/env"
)

// Func is a host function. Returning an error models a thrown exception or a rejected promise.
type Func func(ctx context.Context, args ...any) (any, error)

// Returning builds a Func that always resolves to v
func Returning(v any) Func {
	return func(context.Context, ...any) (any, error) { return v, nil }
}

// Failing builds a Func that always rejects with err
func Failing(err error) Func {
	return func(context.Context, ...any) (any, error) { return nil, err }
}

// Blocking builds a Func that never settles until ctx is done
func Blocking() Func {
	return func(ctx context.Context, _ ...any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
}

// Object is a property bag. Func properties are methods and *Class properties are constructors.
type Object struct {
	mu    sync.RWMutex
	props map[string]any
	calls map[string]int
}

var _ env.Object = (*Object)(nil)

func NewObject(props map[string]any) *Object {
	o := &Object{props: make(map[string]any, len(props)), calls: make(map[string]int)}
	for k, v := range props {
		o.props[k] = v
	}
	return o
}

// Set defines or replaces a property
func (o *Object) Set(key string, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.props[key] = v
}

// Delete removes a property
func (o *Object) Delete(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.props, key)
}

// Calls returns how many times method was invoked through Call
func (o *Object) Calls(method string) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.calls[method]
}

func (o *Object) Get(key string) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.props[key]
}

func (o *Object) Callable(key string) bool {
	_, ok := o.Get(key).(Func)
	return ok
}

func (o *Object) Call(ctx context.Context, method string, args ...any) (any, error) {
	o.mu.Lock()
	fn, ok := o.props[method].(Func)
	o.calls[method]++
	o.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("TypeError: %s is not a function", method)
	}
	return fn(ctx, args...)
}

func (o *Object) Construct(ctx context.Context, class string, args ...any) (env.Object, error) {
	c, ok := o.Get(class).(*Class)
	if !ok {
		return nil, fmt.Errorf("TypeError: %s is not a constructor", class)
	}
	return c.New(ctx, args...)
}

// MarshalJSON renders data properties only, the way JSON.stringify skips functions
func (o *Object) MarshalJSON() ([]byte, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	data := make(map[string]any, len(o.props))
	for k, v := range o.props {
		switch v.(type) {
		case Func, *Class:
			continue
		}
		data[k] = v
	}
	return json.Marshal(data)
}

// Class is a constructor with static members
type Class struct {
	*Object
	ctor func(ctx context.Context, args ...any) (env.Object, error)
}

// NewClass builds a constructor. statics become properties of the class itself.
func NewClass(ctor func(ctx context.Context, args ...any) (env.Object, error), statics map[string]any) *Class {
	return &Class{Object: NewObject(statics), ctor: ctor}
}

func (c *Class) New(ctx context.Context, args ...any) (env.Object, error) {
	if c.ctor == nil {
		return nil, fmt.Errorf("TypeError: class is not constructible")
	}
	return c.ctor(ctx, args...)
}
