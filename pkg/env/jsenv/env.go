//go:build js && wasm

// Package jsenv implements env.Environment on top of syscall/js.
package jsenv

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/denelabs/walletbridge/pkg/env"
)

// Env is the browser page the module runs in
type Env struct {
	global   js.Value
	document js.Value
	importer js.Value
}

var _ env.Environment = (*Env)(nil)

// New binds to globalThis and its document
func New() *Env {
	global := js.Global()
	return &Env{
		global:   global,
		document: global.Get("document"),
		importer: global.Get("Function").New("u", "return import(u)"),
	}
}

func (e *Env) FindGlobal(name string) env.Object {
	v := e.global.Get(name)
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	return Wrap(v)
}

func (e *Env) HasScript(src string) bool {
	if !e.hasDocument() {
		return false
	}
	scripts := e.document.Get("scripts")
	for i := 0; i < scripts.Length(); i++ {
		attr := scripts.Index(i).Call("getAttribute", "src")
		if attr.Type() == js.TypeString && attr.String() == src {
			return true
		}
	}
	return false
}

func (e *Env) AppendScript(ctx context.Context, src string) (err error) {
	if !e.hasDocument() {
		return fmt.Errorf("no document to load %s into", src)
	}
	defer recoverJS(&err)

	done := make(chan error, 1)
	onLoad := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- nil
		return nil
	})
	onError := js.FuncOf(func(this js.Value, args []js.Value) any {
		done <- fmt.Errorf("script %s failed to load", src)
		return nil
	})
	script := e.document.Call("createElement", "script")
	script.Set("src", src)
	script.Set("async", true)
	script.Set("onload", onLoad)
	script.Set("onerror", onError)

	parent := e.document.Get("head")
	if parent.IsNull() || parent.IsUndefined() {
		parent = e.document.Get("documentElement")
	}
	parent.Call("appendChild", script)

	select {
	case <-ctx.Done():
		// the handlers stay alive so a late load or error event has somewhere to go
		return ctx.Err()
	case err := <-done:
		onLoad.Release()
		onError.Release()
		return err
	}
}

func (e *Env) Import(ctx context.Context, url string) (obj env.Object, err error) {
	defer recoverJS(&err)

	module, err := await(ctx, e.importer.Invoke(url))
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", url, err)
	}
	if module.IsUndefined() || module.IsNull() {
		return nil, fmt.Errorf("import %s: empty module", url)
	}
	return Wrap(module), nil
}

func (e *Env) hasDocument() bool {
	return !e.document.IsUndefined() && !e.document.IsNull()
}
