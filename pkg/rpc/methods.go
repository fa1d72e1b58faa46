package rpc

import (
	"context"
	"fmt"
	"time"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/poll"
	"github.com/denelabs/walletbridge/pkg/types"
)

// GetHealth reports the node's health
func (c *Client) GetHealth(ctx context.Context) (*types.HealthResponse, error) {
	var out types.HealthResponse
	if err := c.call(ctx, "getHealth", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetNetwork returns the network passphrase and protocol version served by the node
func (c *Client) GetNetwork(ctx context.Context) (*types.NetworkResponse, error) {
	var out types.NetworkResponse
	if err := c.call(ctx, "getNetwork", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLatestLedger returns the most recent closed ledger
func (c *Client) GetLatestLedger(ctx context.Context) (*types.LatestLedgerResponse, error) {
	var out types.LatestLedgerResponse
	if err := c.call(ctx, "getLatestLedger", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLedgerEntries fetches raw entries for base64 XDR ledger keys
func (c *Client) GetLedgerEntries(ctx context.Context, keys ...string) (*types.LedgerEntriesResponse, error) {
	var out types.LedgerEntriesResponse
	if err := c.call(ctx, "getLedgerEntries", map[string]any{"keys": keys}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccount loads an account's balance and sequence number
func (c *Client) GetAccount(ctx context.Context, address string) (*types.AccountInfo, error) {
	key, err := accountLedgerKey(address)
	if err != nil {
		return nil, err
	}

	res, err := c.GetLedgerEntries(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(res.Entries) == 0 {
		return nil, &types.AccountNotFoundError{Address: address}
	}

	info, err := decodeAccountEntry(res.Entries[0].XDR)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", address, err)
	}
	info.LastModified = res.Entries[0].LastModifiedLedgerSeq
	return info, nil
}

// GetTransaction returns the status of a submitted transaction
func (c *Client) GetTransaction(ctx context.Context, hash string) (*types.TransactionResponse, error) {
	var out types.TransactionResponse
	if err := c.call(ctx, "getTransaction", map[string]any{"hash": hash}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendTransaction submits a signed base64 transaction envelope
func (c *Client) SendTransaction(ctx context.Context, envelopeXDR string) (*types.SendTransactionResponse, error) {
	var out types.SendTransactionResponse
	if err := c.call(ctx, "sendTransaction", map[string]any{"transaction": envelopeXDR}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WaitForTransaction polls getTransaction until the node knows the outcome or timeout elapses
func (c *Client) WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (*types.TransactionResponse, error) {
	var (
		last    *types.TransactionResponse
		lastErr error
	)
	settled := poll.Until(ctx, c.clock, constants.TransactionPollPeriod, timeout, func() bool {
		last, lastErr = c.GetTransaction(ctx, hash)
		return lastErr == nil && last.Status != constants.TxStatusNotFound
	})
	if settled {
		return last, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return last, fmt.Errorf("transaction %s not found after %s", hash, timeout)
}
