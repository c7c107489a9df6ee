package stakestore

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/staking"
	"github.com/code-payments/code-nft-staking/pkg/solana/system"
	"github.com/code-payments/code-nft-staking/pkg/solana/token"
)

// Keys are the accounts a Store is bound to.
type Keys struct {
	Program    ed25519.PublicKey
	StakeStore ed25519.PublicKey
	StakeList  ed25519.PublicKey
	Manager    ed25519.PublicKey

	// Defaults to the SPL token program when nil.
	TokenProgram ed25519.PublicKey
}

// Store builds staking instructions for a single stake store. It holds no
// mutable state and is safe for concurrent use.
type Store struct {
	log  *logrus.Entry
	keys Keys
}

func NewStore(keys *Keys) (*Store, error) {
	if keys == nil {
		return nil, errors.Wrap(staking.ErrInvalidArgument, "keys are required")
	}

	bound := *keys
	if bound.TokenProgram == nil {
		bound.TokenProgram = token.ProgramKey
	}

	for _, k := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"program", bound.Program},
		{"stake store", bound.StakeStore},
		{"stake list", bound.StakeList},
		{"manager", bound.Manager},
		{"token program", bound.TokenProgram},
	} {
		if len(k.key) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(staking.ErrInvalidArgument, "%s key is missing or malformed", k.name)
		}
	}

	return &Store{
		log: logrus.StandardLogger().WithFields(logrus.Fields{
			"type":        "stakestore/store",
			"stake_store": base58.Encode(bound.StakeStore),
		}),
		keys: bound,
	}, nil
}

// Keys returns a copy of the bound keys.
func (s *Store) Keys() Keys {
	return s.keys
}

func (s *Store) Initialize() ([]solana.Instruction, error) {
	ix, err := staking.NewInitializeInstruction(s.keys.Program, &staking.InitializeInstructionAccounts{
		StakeStore: s.keys.StakeStore,
		StakeList:  s.keys.StakeList,
		Manager:    s.keys.Manager,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("built initialize instructions")
	return []solana.Instruction{ix}, nil
}

// CreateStoreInstructions allocates the store and list accounts, owned by the
// program, and initializes them. Payer, store, list and manager must all sign.
// Lamports should cover rent exemption for StoreAccountSize and
// ListAccountSize respectively.
func (s *Store) CreateStoreInstructions(payer ed25519.PublicKey, storeLamports, listLamports uint64) ([]solana.Instruction, error) {
	if len(payer) != ed25519.PublicKeySize {
		return nil, errors.Wrap(staking.ErrInvalidArgument, "payer key is missing or malformed")
	}

	initialize, err := s.Initialize()
	if err != nil {
		return nil, err
	}

	storeSize, listSize := AccountSizes()
	instructions := []solana.Instruction{
		system.CreateAccount(payer, s.keys.StakeStore, s.keys.Program, storeLamports, uint64(storeSize)),
		system.CreateAccount(payer, s.keys.StakeList, s.keys.Program, listLamports, uint64(listSize)),
	}
	return append(instructions, initialize...), nil
}

// Stake deposits the token held by the stake account. The stake account must
// already hold amount tokens of mint and be owned by user.
func (s *Store) Stake(user, mint, stake ed25519.PublicKey, amount uint64) ([]solana.Instruction, error) {
	ix, err := staking.NewStakeInstruction(
		s.keys.Program,
		&staking.StakeInstructionAccounts{
			User:         user,
			Mint:         mint,
			Stake:        stake,
			StakeStore:   s.keys.StakeStore,
			StakeList:    s.keys.StakeList,
			TokenProgram: s.keys.TokenProgram,
		},
		&staking.StakeInstructionArgs{
			Amount: amount,
		},
	)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user":   base58.Encode(user),
		"mint":   base58.Encode(mint),
		"amount": amount,
	}).Debug("built stake instructions")
	return []solana.Instruction{ix}, nil
}

func (s *Store) Reclaim(user, mint, stake, pdaStake ed25519.PublicKey) ([]solana.Instruction, error) {
	ix, err := staking.NewReclaimInstruction(s.keys.Program, &staking.ReclaimInstructionAccounts{
		User:         user,
		Mint:         mint,
		StakeStore:   s.keys.StakeStore,
		StakeList:    s.keys.StakeList,
		Stake:        stake,
		PdaStake:     pdaStake,
		TokenProgram: s.keys.TokenProgram,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user": base58.Encode(user),
		"mint": base58.Encode(mint),
	}).Debug("built reclaim instructions")
	return []solana.Instruction{ix}, nil
}

// TransientStakeAddress is the program authority over a token staked by
// owner for mint.
func (s *Store) TransientStakeAddress(owner, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	pda, _, err := staking.GetTransientStakeAddress(s.keys.Program, &staking.GetTransientStakeAddressArgs{
		Owner: owner,
		Mint:  mint,
	})
	return pda, err
}

// AccountSizes returns the allocation sizes of the store and list accounts.
func AccountSizes() (store, list int) {
	return StoreAccountSize(), ListAccountSize()
}

func StoreAccountSize() int {
	return staking.StakeStoreAccountSize
}

// ListAccountSize is the full pre-allocated size, with capacity for
// staking.MaxItems items.
func ListAccountSize() int {
	return staking.MaxStakeListAccountSize
}
