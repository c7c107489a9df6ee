package computebudget

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

// ProgramKey is the address of the compute budget program.
//
// Current key: ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

type Command uint8

const (
	// nolint:varcheck,deadcode,unused
	CommandRequestUnits Command = iota
	// nolint:varcheck,deadcode,unused
	CommandRequestHeapFrame
	CommandSetComputeUnitLimit
	CommandSetComputeUnitPrice
)

// SetComputeUnitLimit caps the compute units the transaction may consume.
func SetComputeUnitLimit(limit uint32) solana.Instruction {
	var offset int
	data := make([]byte, 1+binary.Uint32Size)
	binary.PutUint8(data, uint8(CommandSetComputeUnitLimit), &offset)
	binary.PutUint32(data, limit, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

// SetComputeUnitPrice sets the priority fee, in micro-lamports per compute
// unit.
func SetComputeUnitPrice(microLamports uint64) solana.Instruction {
	var offset int
	data := make([]byte, 1+binary.Uint64Size)
	binary.PutUint8(data, uint8(CommandSetComputeUnitPrice), &offset)
	binary.PutUint64(data, microLamports, &offset)

	return solana.NewInstruction(ProgramKey, data)
}

type DecompiledComputeBudget struct {
	Command Command

	// Set according to Command.
	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
}

func DecompileComputeBudget(m solana.Message, index int) (*DecompiledComputeBudget, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 {
		return nil, errors.Wrap(solana.ErrIncorrectInstruction, "empty compute budget instruction")
	}

	offset := 1
	decompiled := &DecompiledComputeBudget{Command: Command(i.Data[0])}
	switch decompiled.Command {
	case CommandSetComputeUnitLimit:
		if len(i.Data) != 1+binary.Uint32Size {
			return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid compute unit limit length %d", len(i.Data))
		}
		if err := binary.GetUint32(i.Data, &decompiled.ComputeUnitLimit, &offset); err != nil {
			return nil, err
		}
	case CommandSetComputeUnitPrice:
		if len(i.Data) != 1+binary.Uint64Size {
			return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid compute unit price length %d", len(i.Data))
		}
		if err := binary.GetUint64(i.Data, &decompiled.ComputeUnitPrice, &offset); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "unsupported compute budget command %d", i.Data[0])
	}

	return decompiled, nil
}
