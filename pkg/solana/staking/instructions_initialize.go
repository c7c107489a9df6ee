package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/system"
)

const initializeAccountCount = 4

type InitializeInstructionAccounts struct {
	StakeStore ed25519.PublicKey
	StakeList  ed25519.PublicKey
	Manager    ed25519.PublicKey
}

// NewInitializeInstruction binds the store to its list and manager. Both
// accounts must already be allocated and owned by the program.
func NewInitializeInstruction(
	program ed25519.PublicKey,
	accounts *InitializeInstructionAccounts,
) (solana.Instruction, error) {
	if err := checkProgram(program); err != nil {
		return solana.Instruction{}, err
	}
	if accounts == nil {
		return solana.Instruction{}, errors.Wrap(ErrInvalidArgument, "initialize accounts are required")
	}
	if err := checkKey("stake store", accounts.StakeStore); err != nil {
		return solana.Instruction{}, err
	}
	if err := checkKey("stake list", accounts.StakeList); err != nil {
		return solana.Instruction{}, err
	}
	if err := checkKey("manager", accounts.Manager); err != nil {
		return solana.Instruction{}, err
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: []byte{byte(InstructionTypeInitialize)},

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.StakeStore,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.StakeList,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Manager,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  system.RentSysVar,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}, nil
}
