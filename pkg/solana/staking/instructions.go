package staking

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

type InstructionType uint8

const (
	InstructionTypeInitialize InstructionType = iota
	InstructionTypeStake
	InstructionTypeReclaim
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypeInitialize:
		return "initialize"
	case InstructionTypeStake:
		return "stake"
	case InstructionTypeReclaim:
		return "reclaim"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// DecodeInstructionType reads the opcode of a staking instruction payload.
func DecodeInstructionType(data []byte) (InstructionType, error) {
	if len(data) == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "empty instruction data")
	}

	t := InstructionType(data[0])
	if t > InstructionTypeReclaim {
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown instruction tag %d", data[0])
	}
	return t, nil
}

// DecompiledInstruction is a staking instruction recovered from a compiled
// message.
type DecompiledInstruction struct {
	Type     InstructionType
	Accounts []ed25519.PublicKey

	// Set for InstructionTypeStake only.
	Args *StakeInstructionArgs
}

func DecompileInstruction(program ed25519.PublicKey, m solana.Message, index int) (*DecompiledInstruction, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[i.ProgramIndex], program) {
		return nil, solana.ErrIncorrectProgram
	}

	t, err := DecodeInstructionType(i.Data)
	if err != nil {
		return nil, err
	}

	var expected int
	switch t {
	case InstructionTypeInitialize:
		expected = initializeAccountCount
	case InstructionTypeStake:
		expected = stakeAccountCount
	case InstructionTypeReclaim:
		expected = reclaimAccountCount
	}
	if len(i.Accounts) != expected {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "%s: expected %d accounts, got %d", t, expected, len(i.Accounts))
	}

	decompiled := &DecompiledInstruction{
		Type:     t,
		Accounts: make([]ed25519.PublicKey, len(i.Accounts)),
	}
	for j, accountIndex := range i.Accounts {
		if int(accountIndex) >= len(m.Accounts) {
			return nil, errors.Errorf("account index out of range: %d", accountIndex)
		}
		decompiled.Accounts[j] = m.Accounts[accountIndex]
	}

	if t == InstructionTypeStake {
		decompiled.Args, err = StakeInstructionArgsFromBinary(i.Data)
		if err != nil {
			return nil, err
		}
	}

	return decompiled, nil
}

func checkProgram(program ed25519.PublicKey) error {
	return checkKey("program", program)
}
