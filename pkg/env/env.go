// Package env defines the port between wallet logic and the host page.
//
// Values crossing the port are plain Go values: nil for undefined and null,
// string, bool, float64 for numbers, map[string]any and []any for data,
// and Object for anything with identity or methods.
package env

import (
	"context"
	"encoding/json"
	"fmt"
)

// Environment is the host page as seen by the wallet layer
type Environment interface {
	// FindGlobal returns the global binding name, or nil if it is undefined
	FindGlobal(name string) Object

	// HasScript reports whether a script tag with this src is already in the document
	HasScript(src string) bool

	// AppendScript injects a script tag and waits for its load or error event
	AppendScript(ctx context.Context, src string) error

	// Import performs a dynamic ES module import and returns the module namespace
	Import(ctx context.Context, url string) (Object, error)
}

// Object is a handle on a host object
type Object interface {
	// Get returns a property, nil if it is undefined
	Get(key string) any

	// Callable reports whether the property is a function
	Callable(key string) bool

	// Call invokes a method and waits for the result if it is a promise
	Call(ctx context.Context, method string, args ...any) (any, error)

	// Construct invokes `new this[class](...args)`
	Construct(ctx context.Context, class string, args ...any) (Object, error)
}

// Field reads key from a decoded map or an Object. Present is false for missing and nil values.
func Field(v any, key string) (value any, present bool) {
	switch t := v.(type) {
	case map[string]any:
		value = t[key]
	case Object:
		value = t.Get(key)
	default:
		return nil, false
	}
	return value, value != nil
}

// StringField returns key as a string when it is a non-empty string
func StringField(v any, key string) (string, bool) {
	raw, ok := Field(v, key)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok && s != ""
}

// ObjectField returns key when it holds an Object
func ObjectField(v any, key string) (Object, bool) {
	raw, ok := Field(v, key)
	if !ok {
		return nil, false
	}
	obj, ok := raw.(Object)
	return obj, ok
}

// IsCallable reports whether v is an Object whose key is a function
func IsCallable(v any, key string) bool {
	obj, ok := v.(Object)
	return ok && obj != nil && obj.Callable(key)
}

// JSON renders a host value for diagnostics. Objects are expected to implement json.Marshaler.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
