package ledger

import (
	"context"
	"fmt"

	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/shape"
	"github.com/denelabs/walletbridge/pkg/types"
)

// Server wraps a SorobanRpc.Server instance
type Server struct {
	obj env.Object
	url string
}

// URL returns the endpoint the server was created for
func (s *Server) URL() string {
	return s.url
}

// GetAccount fetches the account. An undefined result is reported as *types.AccountNotFoundError.
func (s *Server) GetAccount(ctx context.Context, publicKey string) (any, error) {
	acct, err := s.obj.Call(ctx, "getAccount", publicKey)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, &types.AccountNotFoundError{Address: publicKey}
	}
	return acct, nil
}

// PrepareTransaction simulates tx and returns it with footprint and resource fees applied
func (s *Server) PrepareTransaction(ctx context.Context, tx env.Object) (env.Object, error) {
	res, err := s.obj.Call(ctx, "prepareTransaction", tx)
	if err != nil {
		return nil, err
	}
	prepared, ok := res.(env.Object)
	if !ok {
		return nil, fmt.Errorf("%w: prepareTransaction returned %s", types.ErrShapeMismatch, env.JSON(res))
	}
	return prepared, nil
}

// SendResult is the decoded sendTransaction answer
type SendResult struct {
	Status string
	Hash   string
	Raw    any // the unmodified result
}

// SendTransaction submits a signed transaction
func (s *Server) SendTransaction(ctx context.Context, tx env.Object) (*SendResult, error) {
	res, err := s.obj.Call(ctx, "sendTransaction", tx)
	if err != nil {
		return nil, err
	}
	status, hash := shape.SendStatus(res)
	return &SendResult{Status: status, Hash: hash, Raw: res}, nil
}
