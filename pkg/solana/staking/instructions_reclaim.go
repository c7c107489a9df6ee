package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/system"
)

const reclaimAccountCount = 8

type ReclaimInstructionAccounts struct {
	User         ed25519.PublicKey
	Mint         ed25519.PublicKey
	StakeStore   ed25519.PublicKey
	StakeList    ed25519.PublicKey
	Stake        ed25519.PublicKey
	PdaStake     ed25519.PublicKey
	TokenProgram ed25519.PublicKey
}

// NewReclaimInstruction returns authority over a staked token account to its
// owner. PdaStake is the transient authority, see GetTransientStakeAddress.
func NewReclaimInstruction(
	program ed25519.PublicKey,
	accounts *ReclaimInstructionAccounts,
) (solana.Instruction, error) {
	if err := checkProgram(program); err != nil {
		return solana.Instruction{}, err
	}
	if accounts == nil {
		return solana.Instruction{}, errors.Wrap(ErrInvalidArgument, "reclaim accounts are required")
	}
	for _, k := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"user", accounts.User},
		{"mint", accounts.Mint},
		{"stake store", accounts.StakeStore},
		{"stake list", accounts.StakeList},
		{"stake", accounts.Stake},
		{"pda stake", accounts.PdaStake},
		{"token program", accounts.TokenProgram},
	} {
		if err := checkKey(k.name, k.key); err != nil {
			return solana.Instruction{}, err
		}
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: []byte{byte(InstructionTypeReclaim)},

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.User,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  system.ClockSysVar,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.StakeStore,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.StakeList,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Stake,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PdaStake,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}, nil
}
