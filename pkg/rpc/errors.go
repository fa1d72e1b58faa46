package rpc

import (
	"errors"
	"fmt"
)

// ErrNoEndpoints is returned when a client has nothing to call
var ErrNoEndpoints = errors.New("no RPC endpoints configured")

// RPCError wraps a transport failure against one endpoint
type RPCError struct {
	Endpoint string
	Err      error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error on %s: %v", e.Endpoint, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// ResponseError is a JSON-RPC error object returned by the server. It is
// never retried on another endpoint.
type ResponseError struct {
	Method  string
	Code    int
	Message string
	Data    any
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s failed with code %d: %s", e.Method, e.Code, e.Message)
}
