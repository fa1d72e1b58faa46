// Package ledgertest provides an in-memory StellarSdk namespace for tests.
package ledgertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/env/memenv"
)

// Server records a SorobanRpc.Server construction
type Server struct {
	URL       string
	AllowHTTP bool
}

// Operation records a Contract.call
type Operation struct {
	Contract string
	Method   string
	Args     []any
}

// Built records a TransactionBuilder.build
type Built struct {
	Source     env.Object
	Fee        string
	Passphrase string
	Timeout    any
	Operations []any
	XDR        string
}

// SDK is a scriptable fake of the StellarSdk namespace. Fields may be set
// before the namespace is used; records are read back after.
type SDK struct {
	Accounts       map[string]any // getAccount results by public key, missing keys resolve to undefined
	AccountErr     error
	AccountCtorErr error
	PrepareErr     error
	SendResult     any
	SendErr        error
	NoToXDR        bool // built transactions only serialize through toEnvelope
	FromXDRErr     error

	mu         sync.Mutex
	count      int
	servers    []Server
	operations []Operation
	built      []Built
	prepared   []string
	parsed     []string
	sent       []string
}

// New returns a fake whose sendTransaction answers {status: PENDING, hash: deadbeef}
func New() *SDK {
	return &SDK{
		Accounts:   make(map[string]any),
		SendResult: map[string]any{"status": "PENDING", "hash": "deadbeef"},
	}
}

func (f *SDK) Servers() []Server {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Server(nil), f.servers...)
}

func (f *SDK) Operations() []Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Operation(nil), f.operations...)
}

func (f *SDK) Built() []Built {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Built(nil), f.built...)
}

// Prepared lists the XDR of every transaction passed to prepareTransaction
func (f *SDK) Prepared() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prepared...)
}

// Parsed lists every XDR passed to TransactionBuilder.fromXDR
func (f *SDK) Parsed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.parsed...)
}

// Sent lists the XDR of every transaction passed to sendTransaction
func (f *SDK) Sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

// Transaction builds a fake transaction serializing to xdr
func (f *SDK) Transaction(xdr string) *memenv.Object {
	envelope := memenv.NewObject(map[string]any{
		"toXDR": memenv.Func(func(_ context.Context, args ...any) (any, error) {
			if len(args) != 1 || args[0] != "base64" {
				return nil, fmt.Errorf("unsupported encoding %v", args)
			}
			return xdr, nil
		}),
	})
	tx := memenv.NewObject(map[string]any{
		"id":         xdr,
		"toEnvelope": memenv.Returning(envelope),
	})
	if !f.NoToXDR {
		tx.Set("toXDR", memenv.Returning(xdr))
	}
	return tx
}

func xdrOf(v any) string {
	s, _ := env.StringField(v, "id")
	return s
}

// Namespace assembles the StellarSdk object
func (f *SDK) Namespace() *memenv.Object {
	server := memenv.NewClass(func(_ context.Context, args ...any) (env.Object, error) {
		rec := Server{}
		if len(args) > 0 {
			rec.URL, _ = args[0].(string)
		}
		if len(args) > 1 {
			if opts, ok := args[1].(map[string]any); ok {
				rec.AllowHTTP, _ = opts["allowHttp"].(bool)
			}
		}
		f.mu.Lock()
		f.servers = append(f.servers, rec)
		f.mu.Unlock()
		return f.server(), nil
	}, nil)

	scVal := memenv.NewObject(map[string]any{
		"scvString": scv("scvString"),
		"scvU32":    scv("scvU32"),
	})

	contract := memenv.NewClass(func(_ context.Context, args ...any) (env.Object, error) {
		id, _ := args[0].(string)
		if id == "" {
			return nil, fmt.Errorf("Invalid contract ID: %v", args[0])
		}
		return memenv.NewObject(map[string]any{
			"contractId": id,
			"call": memenv.Func(func(_ context.Context, args ...any) (any, error) {
				method, _ := args[0].(string)
				op := Operation{Contract: id, Method: method, Args: append([]any(nil), args[1:]...)}
				f.mu.Lock()
				f.operations = append(f.operations, op)
				f.mu.Unlock()
				return memenv.NewObject(map[string]any{"type": "invokeHostFunction", "method": method}), nil
			}),
		}), nil
	}, nil)

	account := memenv.NewClass(func(_ context.Context, args ...any) (env.Object, error) {
		if f.AccountCtorErr != nil {
			return nil, f.AccountCtorErr
		}
		return memenv.NewObject(map[string]any{"accountId": args[0], "sequence": args[1]}), nil
	}, nil)

	builder := memenv.NewClass(f.newBuilder, map[string]any{
		"fromXDR": memenv.Func(func(_ context.Context, args ...any) (any, error) {
			if f.FromXDRErr != nil {
				return nil, f.FromXDRErr
			}
			xdr, _ := args[0].(string)
			f.mu.Lock()
			f.parsed = append(f.parsed, xdr)
			f.mu.Unlock()
			return f.Transaction(xdr), nil
		}),
	})

	return memenv.NewObject(map[string]any{
		"TransactionBuilder": builder,
		"Contract":           contract,
		"Account":            account,
		"SorobanRpc":         memenv.NewObject(map[string]any{"Server": server}),
		"xdr":                memenv.NewObject(map[string]any{"ScVal": scVal}),
	})
}

func scv(kind string) memenv.Func {
	return func(_ context.Context, args ...any) (any, error) {
		return map[string]any{"type": kind, "value": args[0]}, nil
	}
}

func (f *SDK) newBuilder(_ context.Context, args ...any) (env.Object, error) {
	rec := Built{}
	rec.Source, _ = args[0].(env.Object)
	if opts, ok := args[1].(map[string]any); ok {
		rec.Fee, _ = opts["fee"].(string)
		rec.Passphrase, _ = opts["networkPassphrase"].(string)
	}

	b := memenv.NewObject(nil)
	b.Set("addOperation", memenv.Func(func(_ context.Context, args ...any) (any, error) {
		rec.Operations = append(rec.Operations, args[0])
		return b, nil
	}))
	b.Set("setTimeout", memenv.Func(func(_ context.Context, args ...any) (any, error) {
		rec.Timeout = args[0]
		return b, nil
	}))
	b.Set("build", memenv.Func(func(context.Context, ...any) (any, error) {
		f.mu.Lock()
		f.count++
		rec.XDR = fmt.Sprintf("AAAAtx%d", f.count)
		f.built = append(f.built, rec)
		f.mu.Unlock()
		return f.Transaction(rec.XDR), nil
	}))
	return b, nil
}

func (f *SDK) server() *memenv.Object {
	return memenv.NewObject(map[string]any{
		"getAccount": memenv.Func(func(_ context.Context, args ...any) (any, error) {
			if f.AccountErr != nil {
				return nil, f.AccountErr
			}
			pk, _ := args[0].(string)
			return f.Accounts[pk], nil
		}),
		"prepareTransaction": memenv.Func(func(_ context.Context, args ...any) (any, error) {
			xdr := xdrOf(args[0])
			f.mu.Lock()
			f.prepared = append(f.prepared, xdr)
			f.mu.Unlock()
			if f.PrepareErr != nil {
				return nil, f.PrepareErr
			}
			return f.Transaction(xdr + "prepared"), nil
		}),
		"sendTransaction": memenv.Func(func(_ context.Context, args ...any) (any, error) {
			f.mu.Lock()
			f.sent = append(f.sent, xdrOf(args[0]))
			f.mu.Unlock()
			if f.SendErr != nil {
				return nil, f.SendErr
			}
			return f.SendResult, nil
		}),
	})
}
