package stakestore

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/staking"
)

// AccountFetcher retrieves raw account state. solana.AccountFetcher is the
// RPC backed implementation.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, account ed25519.PublicKey) (solana.AccountInfo, error)
}

// Load fetches and decodes an initialized stake store, and returns a Store
// bound to its stake list and manager. A nil tokenProgram binds the SPL
// token program.
func Load(ctx context.Context, fetcher AccountFetcher, storeKey, program, tokenProgram ed25519.PublicKey) (*Store, error) {
	account, err := LoadStoreAccount(ctx, fetcher, storeKey, program)
	if err != nil {
		return nil, err
	}

	return NewStore(&Keys{
		Program:      program,
		StakeStore:   storeKey,
		StakeList:    account.StakeList,
		Manager:      account.Manager,
		TokenProgram: tokenProgram,
	})
}

// LoadStoreAccount fetches and decodes an initialized stake store.
func LoadStoreAccount(ctx context.Context, fetcher AccountFetcher, storeKey, program ed25519.PublicKey) (*staking.StakeStoreAccount, error) {
	log := logrus.StandardLogger().WithFields(logrus.Fields{
		"type":        "stakestore/load",
		"stake_store": base58.Encode(storeKey),
	})

	data, err := fetchOwned(ctx, fetcher, storeKey, program)
	if err != nil {
		log.WithError(err).Warn("failed to fetch stake store")
		return nil, err
	}

	var account staking.StakeStoreAccount
	if err := account.UnmarshalInitialized(data); err != nil {
		log.WithError(err).Warn("failed to decode stake store")
		return nil, err
	}
	return &account, nil
}

// LoadStakeList fetches and decodes the bound stake list.
func (s *Store) LoadStakeList(ctx context.Context, fetcher AccountFetcher) (*staking.StakeListAccount, error) {
	log := s.log.WithField("method", "LoadStakeList")

	data, err := fetchOwned(ctx, fetcher, s.keys.StakeList, s.keys.Program)
	if err != nil {
		log.WithError(err).Warn("failed to fetch stake list")
		return nil, err
	}

	var list staking.StakeListAccount
	if err := list.UnmarshalInitialized(data); err != nil {
		log.WithError(err).Warn("failed to decode stake list")
		return nil, err
	}
	return &list, nil
}

// Snapshot is a stake store and its list, fetched together.
type Snapshot struct {
	Store *staking.StakeStoreAccount
	List  *staking.StakeListAccount
}

// Snapshot fetches both records. The store must still reference the bound
// stake list.
//
// StakedCount is a running total that the program never decrements on
// reclaim, so it is not compared against the list's active count.
func (s *Store) Snapshot(ctx context.Context, fetcher AccountFetcher) (*Snapshot, error) {
	store, err := LoadStoreAccount(ctx, fetcher, s.keys.StakeStore, s.keys.Program)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(store.StakeList, s.keys.StakeList) {
		return nil, errors.Wrapf(
			staking.ErrInvalidState,
			"store references stake list %s, bound to %s",
			base58.Encode(store.StakeList),
			base58.Encode(s.keys.StakeList),
		)
	}

	list, err := s.LoadStakeList(ctx, fetcher)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Store: store,
		List:  list,
	}, nil
}

// fetchOwned returns the account's data once its owner is confirmed to be
// the program.
func fetchOwned(ctx context.Context, fetcher AccountFetcher, key, program ed25519.PublicKey) ([]byte, error) {
	if len(key) != ed25519.PublicKeySize || len(program) != ed25519.PublicKeySize {
		return nil, errors.Wrap(staking.ErrInvalidArgument, "account and program keys are required")
	}

	info, err := fetcher.GetAccountInfo(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get account info for %s", base58.Encode(key))
	}

	if !bytes.Equal(info.Owner, program) {
		return nil, errors.Wrapf(
			staking.ErrOwnershipMismatch,
			"%s is owned by %s, expected %s",
			base58.Encode(key),
			base58.Encode(info.Owner),
			base58.Encode(program),
		)
	}
	return info.Data, nil
}
