package testutil

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

// AccountStore is an in-memory account source that stands in for an RPC
// node in tests.
type AccountStore struct {
	sync.RWMutex

	accounts map[string]solana.AccountInfo
	calls    int
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]solana.AccountInfo),
	}
}

func (s *AccountStore) Put(key ed25519.PublicKey, owner ed25519.PublicKey, data []byte) {
	s.Lock()
	defer s.Unlock()

	s.accounts[base58.Encode(key)] = solana.AccountInfo{
		Data:  append([]byte(nil), data...),
		Owner: owner,
	}
}

func (s *AccountStore) GetAccountInfo(ctx context.Context, key ed25519.PublicKey) (solana.AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return solana.AccountInfo{}, err
	}

	s.Lock()
	defer s.Unlock()

	s.calls++

	info, ok := s.accounts[base58.Encode(key)]
	if !ok {
		return solana.AccountInfo{}, errors.Wrap(solana.ErrNoAccountInfo, base58.Encode(key))
	}
	return info, nil
}

// Calls is the number of GetAccountInfo requests served so far.
func (s *AccountStore) Calls() int {
	s.RLock()
	defer s.RUnlock()

	return s.calls
}
