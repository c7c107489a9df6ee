package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

// ProgramKey is the address of the SPL token program.
//
// Current key: TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA
var ProgramKey = ed25519.PublicKey{6, 221, 246, 225, 215, 101, 161, 147, 217, 203, 225, 70, 206, 235, 121, 172, 28, 180, 133, 237, 95, 91, 55, 145, 58, 140, 245, 133, 126, 255, 0, 169}

type Command byte

const CommandTransfer Command = 3

const (
	transferDataSize     = 1 + binary.Uint64Size
	transferAccountCount = 3
)

// Transfer moves amount tokens from source to dest under the given token
// program. Token programs that keep the SPL instruction set accept the same
// encoding.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/b011698251981b5a12088acba18fad1d41c3719a/token/program/src/instruction.rs#L76-L91
func Transfer(program, source, dest, owner ed25519.PublicKey, amount uint64) solana.Instruction {
	var offset int
	data := make([]byte, transferDataSize)
	binary.PutUint8(data, uint8(CommandTransfer), &offset)
	binary.PutUint64(data, amount, &offset)

	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(source, false),
		solana.NewAccountMeta(dest, false),
		solana.NewReadonlyAccountMeta(owner, true),
	)
}

type DecompiledTransfer struct {
	Source      ed25519.PublicKey
	Destination ed25519.PublicKey
	Owner       ed25519.PublicKey
	Amount      uint64
}

func DecompileTransfer(program ed25519.PublicKey, m solana.Message, index int) (*DecompiledTransfer, error) {
	i, key, err := m.CompiledInstruction(index)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(key, program) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 || Command(i.Data[0]) != CommandTransfer {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) < transferAccountCount {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != transferDataSize {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid instruction data size: %d", len(i.Data))
	}

	accounts, err := m.ResolveAccounts(i)
	if err != nil {
		return nil, err
	}

	v := &DecompiledTransfer{
		Source:      accounts[0],
		Destination: accounts[1],
		Owner:       accounts[2],
	}
	offset := 1
	if err := binary.GetUint64(i.Data, &v.Amount, &offset); err != nil {
		return nil, err
	}
	return v, nil
}
