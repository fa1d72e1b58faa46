// Package rpc is a Soroban JSON-RPC client with endpoint failover.
package rpc

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/utils"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Client calls Soroban RPC across a set of equivalent endpoints
type Client struct {
	network     string
	endpoints   []string
	httpClient  *http.Client
	log         logrus.FieldLogger
	clock       clockwork.Clock
	retryDelay  time.Duration
	maxAttempts int
	timeout     time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cl *Client) { cl.log = logger }
}

// WithClock replaces the real clock, for tests
func WithClock(clock clockwork.Clock) Option {
	return func(cl *Client) { cl.clock = clock }
}

// WithRetryDelay sets the base delay between attempts
func WithRetryDelay(d time.Duration) Option {
	return func(cl *Client) { cl.retryDelay = d }
}

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// WithNetwork names the network in logs and errors
func WithNetwork(network string) Option {
	return func(cl *Client) { cl.network = network }
}

// NewClient creates a client over endpoints
func NewClient(endpoints []string, opts ...Option) *Client {
	c := &Client{
		endpoints:   endpoints,
		httpClient:  utils.CreateHTTPClientWithTimeouts(),
		log:         logrus.StandardLogger(),
		clock:       clockwork.NewRealClock(),
		retryDelay:  constants.DelayBetweenRPCCalls * time.Millisecond,
		maxAttempts: constants.MaxRetries,
		timeout:     constants.RPCRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "rpc").WithField("network", c.network)
	return c
}

// Endpoints returns the configured endpoints
func (c *Client) Endpoints() []string {
	return c.endpoints
}

// call invokes method and decodes its result into out. Transport failures
// move on to the next endpoint, starting from a random one. JSON-RPC error
// responses are returned right away.
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	if len(c.endpoints) == 0 {
		return ErrNoEndpoints
	}

	attempts := c.maxAttempts
	if attempts < len(c.endpoints) {
		attempts = len(c.endpoints)
	}

	startIdx := rand.Intn(len(c.endpoints))
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt)*c.retryDelay + c.retryDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.clock.After(delay):
			}
		}

		endpoint := c.endpoints[(startIdx+attempt)%len(c.endpoints)]
		err := c.callEndpoint(ctx, endpoint, method, params, out)
		if err == nil {
			return nil
		}

		var respErr *ResponseError
		if errors.As(err, &respErr) || ctx.Err() != nil {
			return err
		}

		lastErr = err
		c.log.WithError(err).WithField("endpoint", endpoint).WithField("method", method).Debug("rpc attempt failed")
	}

	c.log.WithError(lastErr).WithField("method", method).Error("all rpc endpoints failed")
	return lastErr
}

func (c *Client) callEndpoint(ctx context.Context, endpoint, method string, params any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{HTTPClient: c.httpClient})

	var (
		resp *jsonrpc.RPCResponse
		err  error
	)
	if params == nil {
		resp, err = client.Call(ctx, method)
	} else {
		resp, err = client.Call(ctx, method, params)
	}

	if resp != nil && resp.Error != nil {
		return &ResponseError{Method: method, Code: resp.Error.Code, Message: resp.Error.Message, Data: resp.Error.Data}
	}
	if err != nil {
		return &RPCError{Endpoint: endpoint, Err: err}
	}
	if resp == nil {
		return &RPCError{Endpoint: endpoint, Err: errors.New("empty response")}
	}
	if out == nil {
		return nil
	}
	if err := resp.GetObject(out); err != nil {
		return &RPCError{Endpoint: endpoint, Err: err}
	}
	return nil
}
