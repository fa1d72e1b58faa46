package memenv

import (
	"context"
	"fmt"
	"sync"

	"github.com/denelabs/walletbridge/pkg/env"
)

// ScriptLoader runs when a script is injected. A nil error fires the load event.
type ScriptLoader func(e *Env) error

type importResult struct {
	module env.Object
	err    error
}

// Env is an in-memory page: globals, script tags and importable modules
type Env struct {
	mu       sync.Mutex
	globals  map[string]env.Object
	scripts  map[string]bool
	loaders  map[string]ScriptLoader
	modules  map[string]importResult
	appended []string
	imported []string
}

var _ env.Environment = (*Env)(nil)

func New() *Env {
	return &Env{
		globals: make(map[string]env.Object),
		scripts: make(map[string]bool),
		loaders: make(map[string]ScriptLoader),
		modules: make(map[string]importResult),
	}
}

// SetGlobal binds obj to a global name
func (e *Env) SetGlobal(name string, obj env.Object) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[name] = obj
}

// DeleteGlobal removes a global binding
func (e *Env) DeleteGlobal(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.globals, name)
}

// AddScriptTag marks src as already present in the document without running it
func (e *Env) AddScriptTag(src string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scripts[src] = true
}

// OnScript scripts what happens when src is injected. Unscripted sources fail to load.
func (e *Env) OnScript(src string, load ScriptLoader) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaders[src] = load
}

// OnImport scripts the result of a dynamic import. Unscripted URLs fail.
func (e *Env) OnImport(url string, module env.Object, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modules[url] = importResult{module: module, err: err}
}

// Appended lists injected script sources in order
func (e *Env) Appended() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.appended...)
}

// Imported lists dynamically imported URLs in order
func (e *Env) Imported() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.imported...)
}

func (e *Env) FindGlobal(name string) env.Object {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.globals[name]
}

func (e *Env) HasScript(src string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scripts[src]
}

func (e *Env) AppendScript(ctx context.Context, src string) error {
	e.mu.Lock()
	e.appended = append(e.appended, src)
	e.scripts[src] = true
	load := e.loaders[src]
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if load == nil {
		return fmt.Errorf("failed to load %s", src)
	}
	return load(e)
}

func (e *Env) Import(ctx context.Context, url string) (env.Object, error) {
	e.mu.Lock()
	e.imported = append(e.imported, url)
	res, ok := e.modules[url]
	e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("failed to fetch dynamically imported module: %s", url)
	}
	return res.module, res.err
}

// Defines is a ScriptLoader that binds name to obj, like a UMD bundle would
func Defines(name string, obj env.Object) ScriptLoader {
	return func(e *Env) error {
		e.SetGlobal(name, obj)
		return nil
	}
}

// LoadsEmpty is a ScriptLoader whose script loads but defines nothing
func LoadsEmpty(*Env) error { return nil }
