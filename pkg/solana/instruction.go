package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// AccountMeta is a positional account reference of an instruction. The
// program indexes accounts by position, so order and flags are part of the
// program's wire contract.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a readonly
// account.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}

func (a AccountMeta) String() string {
	var flags string
	if a.IsSigner {
		flags += "s"
	}
	if a.IsWritable {
		flags += "w"
	}
	if flags == "" {
		flags = "r"
	}
	return fmt.Sprintf("%s[%s]", base58.Encode(a.PublicKey), flags)
}

// SortableAccountMeta is a sortable []AccountMeta based on the solana transaction
// account sorting rules.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
type SortableAccountMeta []AccountMeta

func (s SortableAccountMeta) Len() int {
	return len(s)
}

func (s SortableAccountMeta) Less(i int, j int) bool {
	if s[i].isPayer != s[j].isPayer {
		return s[i].isPayer
	}
	if s[i].isProgram != s[j].isProgram {
		return !s[i].isProgram
	}

	if s[i].IsSigner != s[j].IsSigner {
		return s[i].IsSigner
	}
	if s[i].IsWritable != s[j].IsWritable {
		return s[i].IsWritable
	}

	return bytes.Compare(s[i].PublicKey, s[j].PublicKey) < 0
}

func (s SortableAccountMeta) Swap(i int, j int) {
	s[i], s[j] = s[j], s[i]
}

// Instruction is an opcode-tagged payload for a program together with the
// ordered account references it operates on.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Signers returns the keys that must authorize the instruction, in account order.
func (i Instruction) Signers() []ed25519.PublicKey {
	var signers []ed25519.PublicKey
	for _, a := range i.Accounts {
		if a.IsSigner {
			signers = append(signers, a.PublicKey)
		}
	}
	return signers
}

// CompiledInstruction represents an instruction that has been compiled into a transaction.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}

// CompiledInstruction returns the instruction at index together with its
// program key. Program indexes outside the account list are rejected.
func (m Message) CompiledInstruction(index int) (CompiledInstruction, ed25519.PublicKey, error) {
	if index < 0 || index >= len(m.Instructions) {
		return CompiledInstruction{}, nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) {
		return CompiledInstruction{}, nil, errors.Wrapf(ErrIncorrectInstruction, "program index %d out of range", i.ProgramIndex)
	}
	return i, m.Accounts[i.ProgramIndex], nil
}

// ResolveAccounts maps an instruction's account indexes to keys.
func (m Message) ResolveAccounts(i CompiledInstruction) ([]ed25519.PublicKey, error) {
	keys := make([]ed25519.PublicKey, len(i.Accounts))
	for j, index := range i.Accounts {
		if int(index) >= len(m.Accounts) {
			return nil, errors.Wrapf(ErrIncorrectInstruction, "account index %d out of range", index)
		}
		keys[j] = m.Accounts[index]
	}
	return keys, nil
}
