package token

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidTokenAccount indicates that a Solana account exists at the
	// given address, but it is either not initialized, or not configured correctly.
	ErrInvalidTokenAccount = errors.New("invalid token account")
)

type accountFetcher interface {
	GetAccountInfo(ctx context.Context, account ed25519.PublicKey) (solana.AccountInfo, error)
}

// Client reads token accounts holding a given mint.
type Client struct {
	fetcher accountFetcher
	mint    ed25519.PublicKey
}

// NewClient creates a new Client.
func NewClient(fetcher accountFetcher, mint ed25519.PublicKey) *Client {
	return &Client{
		fetcher: fetcher,
		mint:    mint,
	}
}

func (c *Client) Mint() ed25519.PublicKey {
	return c.mint
}

// GetAccount returns the token account info for the specified account.
//
// If the account is not initialized, or belongs to a different
// mint, then ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(ctx context.Context, accountID ed25519.PublicKey) (*Account, error) {
	accountInfo, err := c.fetcher.GetAccountInfo(ctx, accountID)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	var account Account
	if err := account.Unmarshal(accountInfo.Data); err != nil {
		return nil, ErrInvalidTokenAccount
	}
	if account.State == AccountStateUninitialized {
		return nil, ErrInvalidTokenAccount
	}

	if !bytes.Equal(c.mint, account.Mint) {
		return nil, ErrInvalidTokenAccount
	}

	return &account, nil
}
