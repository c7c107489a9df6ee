package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
	"github.com/code-payments/code-nft-staking/pkg/solana/system"
)

const (
	StakeInstructionArgsSize = 8 // amount

	stakeAccountCount = 7
)

type StakeInstructionArgs struct {
	Amount uint64
}

type StakeInstructionAccounts struct {
	User         ed25519.PublicKey
	Mint         ed25519.PublicKey
	Stake        ed25519.PublicKey
	StakeStore   ed25519.PublicKey
	StakeList    ed25519.PublicKey
	TokenProgram ed25519.PublicKey
}

// NewStakeInstruction records a deposit of the token held by the Stake
// account. The program moves the Stake account's authority to its transient
// PDA.
func NewStakeInstruction(
	program ed25519.PublicKey,
	accounts *StakeInstructionAccounts,
	args *StakeInstructionArgs,
) (solana.Instruction, error) {
	if err := checkProgram(program); err != nil {
		return solana.Instruction{}, err
	}
	if accounts == nil || args == nil {
		return solana.Instruction{}, errors.Wrap(ErrInvalidArgument, "stake accounts and args are required")
	}
	for _, k := range []struct {
		name string
		key  ed25519.PublicKey
	}{
		{"user", accounts.User},
		{"mint", accounts.Mint},
		{"stake", accounts.Stake},
		{"stake store", accounts.StakeStore},
		{"stake list", accounts.StakeList},
		{"token program", accounts.TokenProgram},
	} {
		if err := checkKey(k.name, k.key); err != nil {
			return solana.Instruction{}, err
		}
	}

	var offset int
	data := make([]byte, 1+StakeInstructionArgsSize)
	binary.PutUint8(data, uint8(InstructionTypeStake), &offset)
	binary.PutUint64(data, args.Amount, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

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
				PublicKey:  accounts.Stake,
				IsWritable: true,
				IsSigner:   false,
			},
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
				PublicKey:  accounts.TokenProgram,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}, nil
}

// StakeInstructionArgsFromBinary decodes the arguments of a stake payload,
// opcode included. Trailing bytes are ignored.
func StakeInstructionArgsFromBinary(data []byte) (*StakeInstructionArgs, error) {
	t, err := DecodeInstructionType(data)
	if err != nil {
		return nil, err
	}
	if t != InstructionTypeStake {
		return nil, errors.Wrapf(ErrInvalidArgument, "expected stake instruction, got %s", t)
	}

	offset := 1
	var args StakeInstructionArgs
	if err := binary.GetUint64(data, &args.Amount, &offset); err != nil {
		return nil, errors.Wrap(ErrInvalidArgument, "stake instruction missing amount")
	}
	return &args, nil
}
