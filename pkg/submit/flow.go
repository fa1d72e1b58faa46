// Package submit builds, simulates, signs and sends a submit_negative
// contract call through the browser wallet.
package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/denelabs/walletbridge/pkg/constants"
	"github.com/denelabs/walletbridge/pkg/env"
	"github.com/denelabs/walletbridge/pkg/ledger"
	"github.com/denelabs/walletbridge/pkg/shape"
	"github.com/denelabs/walletbridge/pkg/types"
	"github.com/denelabs/walletbridge/pkg/utils"
	"github.com/denelabs/walletbridge/pkg/wallet"
	"github.com/sirupsen/logrus"
)

// APISource yields the normalized wallet API
type APISource interface {
	API(ctx context.Context) (*wallet.API, error)
}

// Request is everything needed to record one negative comment on chain
type Request struct {
	RPCURL            string
	NetworkPassphrase string
	ContractID        string
	PublicKey         string
	types.NegativeComment
}

// Flow runs the submission pipeline
type Flow struct {
	api APISource
	log logrus.FieldLogger
}

// NewFlow creates a flow. A nil logger uses the standard logger.
func NewFlow(api APISource, logger logrus.FieldLogger) *Flow {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Flow{api: api, log: logger.WithField("component", "submit")}
}

// SubmitNegativeComment runs the pipeline and returns "SUCCESS:<hash>" on
// success. Any failure comes back as a string starting with "Error: ", or
// as "Submission failed: <result>" when the RPC refused the transaction.
func (f *Flow) SubmitNegativeComment(ctx context.Context, req Request) string {
	hash, err := f.Run(ctx, req)
	if err != nil {
		f.log.WithError(err).WithField("comment", req.CommentID).Warn("negative comment submission failed")
		var failed *types.SubmissionFailedError
		if errors.As(err, &failed) {
			return failed.Error()
		}
		return constants.SubmitErrorTag + err.Error()
	}
	return constants.SubmitSuccessTag + hash
}

// Run executes every stage in order and returns the transaction hash
func (f *Flow) Run(ctx context.Context, req Request) (hash string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host panic: %v", r)
		}
	}()

	req.PublicKey = strings.TrimSpace(req.PublicKey)
	if err := req.validate(); err != nil {
		return "", err
	}

	api, err := f.api.API(ctx)
	if err != nil {
		return "", fmt.Errorf("wallet api unavailable: %w", err)
	}
	p := &pipeline{sdk: api.SDK, api: api, req: req, log: f.log}

	d, err := p.draft(ctx)
	if err != nil {
		return "", err
	}
	pr := p.prepare(ctx, d)
	s, err := p.sign(ctx, pr)
	if err != nil {
		return "", err
	}
	res, err := p.send(ctx, s)
	if err != nil {
		return "", err
	}
	return res.hash, nil
}

func (r Request) validate() error {
	switch {
	case r.RPCURL == "":
		return errors.New("rpc url is required")
	case r.NetworkPassphrase == "":
		return errors.New("network passphrase is required")
	case r.ContractID == "":
		return errors.New("contract id is required")
	case r.PublicKey == "":
		return errors.New("public key is required")
	}
	return nil
}

// pipeline stages. Each stage only accepts the output of the one before it.
type (
	draft struct {
		server *ledger.Server
		tx     env.Object
	}
	prepared struct {
		server *ledger.Server
		tx     env.Object
	}
	signed struct {
		server *ledger.Server
		tx     env.Object
	}
	result struct {
		hash string
	}
)

type pipeline struct {
	sdk *ledger.SDK
	api *wallet.API
	req Request
	log logrus.FieldLogger
}

func (p *pipeline) draft(ctx context.Context) (*draft, error) {
	server, err := p.sdk.NewServer(ctx, p.req.RPCURL)
	if err != nil {
		return nil, err
	}

	fetched, err := server.GetAccount(ctx, p.req.PublicKey)
	if err != nil {
		var notFound *types.AccountNotFoundError
		if errors.As(err, &notFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load account %s: %w", p.req.PublicKey, err)
	}

	seq, ok := shape.Sequence(fetched)
	if !ok {
		seq = "0"
	}
	p.log.WithField("account", utils.ShortAddress(p.req.PublicKey)).WithField("sequence", seq).Debug("account loaded")

	source, err := p.sdk.NewAccount(ctx, p.req.PublicKey, seq)
	if err != nil {
		obj, isObj := fetched.(env.Object)
		if !isObj {
			return nil, fmt.Errorf("failed to build source account: %w", err)
		}
		p.log.WithError(err).Error("could not rebuild account, using fetched account as source")
		source = obj
	}

	op, err := p.sdk.ContractCall(ctx, p.req.ContractID, constants.MethodSubmitNegative,
		ledger.String(p.req.CommentID),
		ledger.U32(p.req.Score),
		ledger.String(p.req.ContentHash),
	)
	if err != nil {
		return nil, err
	}

	tx, err := p.sdk.BuildTransaction(ctx, source, op, ledger.BuildOptions{
		Fee:               constants.TransactionFee,
		NetworkPassphrase: p.req.NetworkPassphrase,
		TimeoutSeconds:    constants.TransactionTimeoutSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	return &draft{server: server, tx: tx}, nil
}

// prepare simulates the draft. A failed simulation keeps the unprepared transaction.
func (p *pipeline) prepare(ctx context.Context, d *draft) *prepared {
	tx, err := d.server.PrepareTransaction(ctx, d.tx)
	if err != nil {
		p.log.WithError(err).WithField("step", "prepare").WithField("url", d.server.URL()).Error("simulation failed, continuing with unprepared transaction")
		return &prepared{server: d.server, tx: d.tx}
	}
	return &prepared{server: d.server, tx: tx}
}

func (p *pipeline) sign(ctx context.Context, pr *prepared) (*signed, error) {
	xdr, err := ledger.Serialize(ctx, pr.tx)
	if err != nil {
		return nil, err
	}

	signedXDR, err := wallet.Sign(ctx, p.api, xdr, p.req.NetworkPassphrase)
	if err != nil {
		var rejection *types.RemoteRejectionError
		if errors.As(err, &rejection) {
			return nil, fmt.Errorf("wallet rejected signing: %s", rejection.Reason)
		}
		return nil, fmt.Errorf("signing failed: %w", err)
	}

	tx, err := p.sdk.FromXDR(ctx, signedXDR, p.req.NetworkPassphrase)
	if err != nil {
		return nil, fmt.Errorf("could not parse signed transaction: %w", err)
	}
	return &signed{server: pr.server, tx: tx}, nil
}

func (p *pipeline) send(ctx context.Context, s *signed) (*result, error) {
	res, err := s.server.SendTransaction(ctx, s.tx)
	if err != nil {
		return nil, fmt.Errorf("send failed: %w", err)
	}

	switch res.Status {
	case constants.TxStatusPending, constants.TxStatusSuccess:
		p.log.WithField("hash", res.Hash).WithField("status", res.Status).Info("transaction submitted")
		return &result{hash: res.Hash}, nil
	default:
		return nil, &types.SubmissionFailedError{Status: res.Status, Raw: env.JSON(res.Raw)}
	}
}
