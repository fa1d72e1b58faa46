//go:build js && wasm

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"syscall/js"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/rpc"
	"github.com/denelabs/walletbridge/pkg/submit"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/denelabs/walletbridge/pkg/utils"
	"github.com/denelabs/walletbridge/pkg/wallet"
	log "github.com/sirupsen/logrus"
)

type bridge struct {
	adapter *wallet.Adapter
	flow    *submit.Flow
	logger  log.FieldLogger
	timeout time.Duration
}

func (b *bridge) exports() js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("connect", b.connectWrapper())
	obj.Set("getPublicKey", b.getPublicKeyWrapper())
	obj.Set("isConnected", b.isConnectedWrapper())
	obj.Set("signTransaction", b.signTransactionWrapper())
	obj.Set("submitNegativeComment", b.submitNegativeCommentWrapper())
	obj.Set("transactionStatus", b.transactionStatusWrapper())
	return obj
}

func (b *bridge) connectWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		return b.adapter.Connect(context.Background()), nil
	})
}

func (b *bridge) getPublicKeyWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		return b.adapter.GetPublicKey(context.Background()), nil
	})
}

func (b *bridge) isConnectedWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		return b.adapter.IsConnected(context.Background()), nil
	})
}

func (b *bridge) signTransactionWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		if err := expectArgs(args, "xdr", "network"); err != nil {
			b.logger.WithError(err).Warn("sign transaction failed")
			return "", nil
		}
		return b.adapter.SignTransaction(context.Background(), args[0].String(), args[1].String()), nil
	})
}

func (b *bridge) submitNegativeCommentWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		if err := expectArgs(args, "rpcUrl", "passphrase", "contractId", "commentId", "score", "contentHash", "publicKey"); err != nil {
			return b.rejectSubmission(err), nil
		}
		score, err := uint32Arg(args[4], "score")
		if err != nil {
			return b.rejectSubmission(err), nil
		}

		req := submit.Request{
			RPCURL:            args[0].String(),
			NetworkPassphrase: args[1].String(),
			ContractID:        args[2].String(),
			PublicKey:         args[6].String(),
			NegativeComment: types.NegativeComment{
				CommentID:   args[3].String(),
				Score:       score,
				ContentHash: args[5].String(),
			},
		}
		return b.flow.SubmitNegativeComment(context.Background(), req), nil
	})
}

// rejectSubmission reports bad arguments the way the flow reports its own failures
func (b *bridge) rejectSubmission(err error) string {
	b.logger.WithError(err).Warn("negative comment submission failed")
	return constants.SubmitErrorTag + err.Error()
}

// transactionStatusWrapper rejects its promise on failure, unlike the wallet entry points
func (b *bridge) transactionStatusWrapper() js.Func {
	return JSPromise(func(args []js.Value) (interface{}, error) {
		if err := expectArgs(args, "rpcUrl", "hash"); err != nil {
			return nil, err
		}
		rpcURL := args[0].String()
		if err := utils.ValidateRPCURL(rpcURL); err != nil {
			return nil, err
		}

		client := rpc.NewClient([]string{rpcURL}, rpc.WithLogger(b.logger), rpc.WithTimeout(b.timeout))
		res, err := client.GetTransaction(context.Background(), args[1].String())
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"status":       res.Status,
			"ledger":       res.Ledger,
			"latestLedger": res.LatestLedger,
			"createdAt":    res.CreatedAt,
		}, nil
	})
}

// expectArgs checks that every named argument is present and a string
func expectArgs(args []js.Value, names ...string) error {
	if len(args) != len(names) {
		return fmt.Errorf("invalid number of args: expected %d, got %d", len(names), len(args))
	}
	for i, name := range names {
		if err := validateArg(args, i, name); err != nil {
			return err
		}
		if name == "score" {
			continue
		}
		if args[i].Type() != js.TypeString {
			return fmt.Errorf("argument %s must be a string", name)
		}
	}
	return nil
}

func uint32Arg(v js.Value, name string) (uint32, error) {
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("argument %s must be a number", name)
	}
	f := v.Float()
	if f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("argument %s must be an unsigned 32-bit integer, got %v", name, f)
	}
	return uint32(f), nil
}

// validateArg checks that the argument at index is neither null nor undefined
func validateArg(args []js.Value, index int, argName string) error {
	if index >= len(args) {
		return fmt.Errorf("missing required argument: %s (index %d)", argName, index)
	}
	if args[index].IsNull() {
		return fmt.Errorf("argument %s cannot be null", argName)
	}
	if args[index].IsUndefined() {
		return fmt.Errorf("argument %s cannot be undefined", argName)
	}
	return nil
}

type promise func(args []js.Value) (interface{}, error)

// JSPromise runs fn on a goroutine and settles a JS Promise with its result
func JSPromise(fn promise) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		handlerArgs := args
		handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			resolve := args[0]
			reject := args[1]

			go func() {
				data, err := safeCall(fn, handlerArgs)
				if err != nil {
					errorConstructor := js.Global().Get("Error")
					reject.Invoke(errorConstructor.New(err.Error()))
				} else {
					resolve.Invoke(data)
				}
			}()

			return nil
		})

		promiseConstructor := js.Global().Get("Promise")
		return promiseConstructor.New(handler)
	})
}

func safeCall(fn promise, args []js.Value) (data interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(fmt.Sprint(r))
		}
	}()
	return fn(args)
}
