package types

import (
	"errors"
	"fmt"

	"github.com/denelabs/walletbridge/pkg/constants"
)

var (
	// ErrProviderMissing is returned when no wallet provider global or module is available
	ErrProviderMissing = errors.New("wallet provider not found")
	// ErrModuleLoad is returned when an external script or module fails to load
	ErrModuleLoad = errors.New("module load failure")
	// ErrShapeMismatch is returned when a host value has none of the accepted shapes
	ErrShapeMismatch = errors.New("unrecognized result shape")
	// ErrSerialization is returned when a transaction cannot be encoded or decoded as XDR
	ErrSerialization = errors.New("transaction serialization failure")
	// ErrAccountNotFound is returned when the ledger has no entry for an account
	ErrAccountNotFound = errors.New("account not found")
)

// RemoteRejectionError is returned when the wallet or RPC answers with an explicit error payload
type RemoteRejectionError struct {
	Source string
	Reason string
}

func (e *RemoteRejectionError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Source, e.Reason)
}

// AccountNotFoundError carries the account that was looked up
type AccountNotFoundError struct {
	Address string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found", e.Address)
}

func (e *AccountNotFoundError) Unwrap() error {
	return ErrAccountNotFound
}

// SubmissionFailedError is returned when the RPC reports a terminal status for a sent transaction
type SubmissionFailedError struct {
	Status string
	Raw    string // remote result, JSON encoded
}

func (e *SubmissionFailedError) Error() string {
	return constants.SubmitFailedPrefix + e.Raw
}
