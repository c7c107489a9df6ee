package solana

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/code-payments/code-nft-staking/pkg/retry"
	"github.com/code-payments/code-nft-staking/pkg/retry/backoff"
)

const (
	// Reference: https://github.com/solana-labs/solana/blob/71e9958e061493d7545bd28d4ac7a85aaed6ffbb/client/src/rpc_custom_error.rs#L11
	rpcNodeUnhealthyCode = -32005
)

type Commitment struct {
	Commitment string `json:"commitment"`
}

const (
	confirmationStatusProcessed = "processed"
	confirmationStatusConfirmed = "confirmed"
	confirmationStatusFinalized = "finalized"
)

var (
	CommitmentProcessed = Commitment{Commitment: confirmationStatusProcessed}
	CommitmentConfirmed = Commitment{Commitment: confirmationStatusConfirmed}
	CommitmentFinalized = Commitment{Commitment: confirmationStatusFinalized}
)

// CommitmentFromString parses a commitment level name.
func CommitmentFromString(s string) (Commitment, error) {
	switch s {
	case confirmationStatusProcessed:
		return CommitmentProcessed, nil
	case confirmationStatusConfirmed:
		return CommitmentConfirmed, nil
	case confirmationStatusFinalized:
		return CommitmentFinalized, nil
	default:
		return Commitment{}, errors.Errorf("unknown commitment: %q", s)
	}
}

var (
	ErrNoAccountInfo = errors.New("no account info")
)

// AccountInfo contains the Solana account information (not to be confused with a TokenAccount)
type AccountInfo struct {
	Data       []byte
	Owner      ed25519.PublicKey
	Lamports   uint64
	Executable bool
}

// Client provides an interaction with the Solana JSON RPC API.
//
// Reference: https://docs.solana.com/apps/jsonrpc-api
type Client interface {
	GetAccountInfo(ctx context.Context, account ed25519.PublicKey, commitment Commitment) (AccountInfo, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "solana/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

func (c *client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) handleRpcError(method string, err error) error {
	var code int
	switch typed := err.(type) {
	case *jsonrpc.RPCError:
		code = typed.Code
	case *jsonrpc.HTTPError:
		code = typed.Code
	default:
		return err
	}

	if code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if code >= 500 || code == rpcNodeUnhealthyCode {
		c.log.WithError(err).WithField("method", method).Warn("service error")
		return errServiceError
	}

	return err
}

func (c *client) GetAccountInfo(ctx context.Context, account ed25519.PublicKey, commitment Commitment) (accountInfo AccountInfo, err error) {
	type rpcResponse struct {
		Value *struct {
			Lamports   uint64   `json:"lamports"`
			Owner      string   `json:"owner"`
			Data       []string `json:"data"`
			Executable bool     `json:"executable"`
		} `json:"value"`
	}

	rpcConfig := struct {
		Commitment string `json:"commitment"`
		Encoding   string `json:"encoding"`
	}{
		Commitment: commitment.Commitment,
		Encoding:   "base64",
	}

	var resp rpcResponse
	if err := c.call(ctx, &resp, "getAccountInfo", base58.Encode(account[:]), rpcConfig); err != nil {
		return accountInfo, errors.Wrap(err, "getAccountInfo() failed to send request")
	}

	if resp.Value == nil {
		return accountInfo, errors.Wrap(ErrNoAccountInfo, base58.Encode(account))
	}

	accountInfo.Owner, err = base58.Decode(resp.Value.Owner)
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base58 encoded owner")
	}

	if len(resp.Value.Data) == 0 {
		return accountInfo, errors.New("missing account data")
	}
	accountInfo.Data, err = base64.StdEncoding.DecodeString(resp.Value.Data[0])
	if err != nil {
		return accountInfo, errors.Wrap(err, "invalid base64 encoded data")
	}

	accountInfo.Lamports = resp.Value.Lamports
	accountInfo.Executable = resp.Value.Executable

	return accountInfo, nil
}

// AccountFetcher reads a single account at a fixed commitment level.
type AccountFetcher struct {
	client     Client
	commitment Commitment
}

// NewAccountFetcher binds a Client to a commitment level.
func NewAccountFetcher(client Client, commitment Commitment) *AccountFetcher {
	return &AccountFetcher{
		client:     client,
		commitment: commitment,
	}
}

func (f *AccountFetcher) GetAccountInfo(ctx context.Context, account ed25519.PublicKey) (AccountInfo, error) {
	return f.client.GetAccountInfo(ctx, account, f.commitment)
}
