package token

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

func (s AccountState) String() string {
	switch s {
	case AccountStateUninitialized:
		return "uninitialized"
	case AccountStateInitialized:
		return "initialized"
	case AccountStateFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("unknown(%d)", byte(s))
	}
}

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

type Account struct {
	// The mint associated with this account
	Mint ed25519.PublicKey
	// The owner of this account.
	Owner ed25519.PublicKey
	// The amount of tokens this account holds.
	Amount uint64
	// If set, then the 'DelegatedAmount' represents the amount
	// authorized by the delegate.
	Delegate ed25519.PublicKey
	/// The account's state
	State AccountState
	// If set, this is a native token, and the value logs the rent-exempt reserve.
	IsNative *uint64
	// The amount delegated
	DelegatedAmount uint64
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	var offset int
	binary.PutKey32(b, a.Mint, &offset)
	binary.PutKey32(b, a.Owner, &offset)
	binary.PutUint64(b, a.Amount, &offset)
	binary.PutOptionalKey32(b, a.Delegate, &offset)
	binary.PutUint8(b, uint8(a.State), &offset)
	binary.PutOptionalUint64(b, a.IsNative, &offset)
	binary.PutUint64(b, a.DelegatedAmount, &offset)
	binary.PutOptionalKey32(b, a.CloseAuthority, &offset)

	return b
}

func (a *Account) Unmarshal(b []byte) error {
	if len(b) != AccountSize {
		return errors.Wrapf(binary.ErrMalformedBuffer, "invalid token account size: %d", len(b))
	}

	var offset int
	var state uint8
	for _, get := range []func() error{
		func() error { return binary.GetKey32(b, &a.Mint, &offset) },
		func() error { return binary.GetKey32(b, &a.Owner, &offset) },
		func() error { return binary.GetUint64(b, &a.Amount, &offset) },
		func() error { return binary.GetOptionalKey32(b, &a.Delegate, &offset) },
		func() error { return binary.GetUint8(b, &state, &offset) },
		func() error { return binary.GetOptionalUint64(b, &a.IsNative, &offset) },
		func() error { return binary.GetUint64(b, &a.DelegatedAmount, &offset) },
		func() error { return binary.GetOptionalKey32(b, &a.CloseAuthority, &offset) },
	} {
		if err := get(); err != nil {
			return err
		}
	}
	a.State = AccountState(state)

	return nil
}

func (a *Account) String() string {
	return fmt.Sprintf(
		"Account{mint=%s,owner=%s,amount=%d,state=%s}",
		base58.Encode(a.Mint),
		base58.Encode(a.Owner),
		a.Amount,
		a.State,
	)
}
