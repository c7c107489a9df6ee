package system

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

// ProgramKey is the system program, the all-zero key.
var ProgramKey = make(ed25519.PublicKey, ed25519.PublicKeySize)

const commandCreateAccount uint32 = 0

const (
	createAccountDataSize = (4 + // command
		8 + // lamports
		8 + // space
		32) // owner

	createAccountAccountCount = 2
)

// CreateAccount allocates size bytes at address, funded with lamports and
// assigned to owner. Both funder and address sign.
//
// Reference: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/system_instruction.rs#L58-L72
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	var offset int
	data := make([]byte, createAccountDataSize)
	binary.PutUint32(data, commandCreateAccount, &offset)
	binary.PutUint64(data, lamports, &offset)
	binary.PutUint64(data, size, &offset)
	binary.PutKey32(data, owner, &offset)

	return solana.NewInstruction(
		ProgramKey,
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

type DecompiledCreateAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey

	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecompileCreateAccount(m solana.Message, index int) (*DecompiledCreateAccount, error) {
	i, program, err := m.CompiledInstruction(index)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(program, ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	var offset int
	var command uint32
	if err := binary.GetUint32(i.Data, &command, &offset); err != nil || command != commandCreateAccount {
		return nil, solana.ErrIncorrectInstruction
	}
	if len(i.Accounts) != createAccountAccountCount {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid number of accounts: %d", len(i.Accounts))
	}
	if len(i.Data) != createAccountDataSize {
		return nil, errors.Wrapf(solana.ErrIncorrectInstruction, "invalid instruction data size: %d", len(i.Data))
	}

	accounts, err := m.ResolveAccounts(i)
	if err != nil {
		return nil, err
	}

	v := &DecompiledCreateAccount{
		Funder:  accounts[0],
		Address: accounts[1],
	}
	if err := binary.GetUint64(i.Data, &v.Lamports, &offset); err != nil {
		return nil, err
	}
	if err := binary.GetUint64(i.Data, &v.Size, &offset); err != nil {
		return nil, err
	}
	if err := binary.GetKey32(i.Data, &v.Owner, &offset); err != nil {
		return nil, err
	}
	return v, nil
}
