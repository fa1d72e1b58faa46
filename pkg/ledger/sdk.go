// Package ledger is a typed facade over the StellarSdk namespace loaded in the page.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/types"
)

// Members the SDK namespace must expose
var requiredMembers = []string{"TransactionBuilder", "SorobanRpc", "Contract", "Account", "xdr"}

// SDK wraps the StellarSdk namespace object
type SDK struct {
	ns env.Object
}

// New validates the namespace and wraps it
func New(ns env.Object) (*SDK, error) {
	if ns == nil {
		return nil, fmt.Errorf("%w: sdk namespace is undefined", types.ErrModuleLoad)
	}
	for _, name := range requiredMembers {
		if ns.Get(name) == nil {
			return nil, fmt.Errorf("%w: sdk namespace has no %s", types.ErrShapeMismatch, name)
		}
	}
	return &SDK{ns: ns}, nil
}

func (s *SDK) member(name string) (env.Object, error) {
	obj, ok := env.ObjectField(s.ns, name)
	if !ok {
		return nil, fmt.Errorf("%w: sdk member %s is not an object", types.ErrShapeMismatch, name)
	}
	return obj, nil
}

// NewServer creates a SorobanRpc.Server. Plain http is allowed only for http:// URLs.
func (s *SDK) NewServer(ctx context.Context, rpcURL string) (*Server, error) {
	rpcNS, err := s.member("SorobanRpc")
	if err != nil {
		return nil, err
	}
	opts := map[string]any{"allowHttp": strings.HasPrefix(rpcURL, "http://")}
	obj, err := rpcNS.Construct(ctx, "Server", rpcURL, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc server for %s: %w", rpcURL, err)
	}
	return &Server{obj: obj, url: rpcURL}, nil
}

// NewAccount builds an Account(publicKey, sequence)
func (s *SDK) NewAccount(ctx context.Context, publicKey, sequence string) (env.Object, error) {
	return s.ns.Construct(ctx, "Account", publicKey, sequence)
}

// Arg is a typed contract argument
type Arg struct {
	ctor  string // xdr.ScVal factory
	value any
}

// String encodes v as an ScVal string
func String(v string) Arg { return Arg{ctor: "scvString", value: v} }

// U32 encodes v as an ScVal u32
func U32(v uint32) Arg { return Arg{ctor: "scvU32", value: v} }

func (s *SDK) scVal(ctx context.Context, a Arg) (any, error) {
	xdrNS, err := s.member("xdr")
	if err != nil {
		return nil, err
	}
	scv, ok := env.ObjectField(xdrNS, "ScVal")
	if !ok {
		return nil, fmt.Errorf("%w: sdk has no xdr.ScVal", types.ErrShapeMismatch)
	}
	return scv.Call(ctx, a.ctor, a.value)
}

// ContractCall builds the invokeHostFunction operation for contractID.method(args...)
func (s *SDK) ContractCall(ctx context.Context, contractID, method string, args ...Arg) (env.Object, error) {
	contract, err := s.ns.Construct(ctx, "Contract", contractID)
	if err != nil {
		return nil, fmt.Errorf("invalid contract %s: %w", contractID, err)
	}

	callArgs := make([]any, 0, len(args)+1)
	callArgs = append(callArgs, method)
	for _, a := range args {
		v, err := s.scVal(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("failed to encode argument for %s: %w", method, err)
		}
		callArgs = append(callArgs, v)
	}

	op, err := contract.Call(ctx, "call", callArgs...)
	if err != nil {
		return nil, err
	}
	opObj, ok := op.(env.Object)
	if !ok {
		return nil, fmt.Errorf("%w: contract.call returned %s", types.ErrShapeMismatch, env.JSON(op))
	}
	return opObj, nil
}

// BuildOptions are the TransactionBuilder parameters
type BuildOptions struct {
	Fee               string
	NetworkPassphrase string
	TimeoutSeconds    int
}

// BuildTransaction assembles a one-operation transaction from source
func (s *SDK) BuildTransaction(ctx context.Context, source, op env.Object, opts BuildOptions) (env.Object, error) {
	builder, err := s.ns.Construct(ctx, "TransactionBuilder", source, map[string]any{
		"fee":               opts.Fee,
		"networkPassphrase": opts.NetworkPassphrase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction builder: %w", err)
	}
	if _, err := builder.Call(ctx, "addOperation", op); err != nil {
		return nil, err
	}
	if _, err := builder.Call(ctx, "setTimeout", opts.TimeoutSeconds); err != nil {
		return nil, err
	}
	tx, err := builder.Call(ctx, "build")
	if err != nil {
		return nil, err
	}
	txObj, ok := tx.(env.Object)
	if !ok {
		return nil, fmt.Errorf("%w: build returned %s", types.ErrShapeMismatch, env.JSON(tx))
	}
	return txObj, nil
}

// FromXDR parses a base64 transaction envelope
func (s *SDK) FromXDR(ctx context.Context, xdr, networkPassphrase string) (env.Object, error) {
	builder, err := s.member("TransactionBuilder")
	if err != nil {
		return nil, err
	}
	tx, err := builder.Call(ctx, "fromXDR", xdr, networkPassphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSerialization, err)
	}
	txObj, ok := tx.(env.Object)
	if !ok {
		return nil, fmt.Errorf("%w: fromXDR returned %s", types.ErrSerialization, env.JSON(tx))
	}
	return txObj, nil
}
