package memo

import (
	"bytes"
	"crypto/ed25519"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

// ProgramKey is the address of the SPL memo program.
//
// Current key: MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr
var ProgramKey = ed25519.PublicKey{5, 74, 83, 90, 153, 41, 33, 6, 77, 36, 232, 113, 96, 218, 56, 124, 124, 53, 181, 221, 188, 146, 187, 129, 228, 31, 168, 64, 65, 5, 68, 141}

// MaxMemoSize keeps a memo well within a transaction alongside staking
// instructions.
const MaxMemoSize = 566

var ErrInvalidMemo = errors.New("invalid memo")

// Instruction attaches a UTF-8 memo to a transaction. The memo program
// rejects anything else.
//
// Reference: https://github.com/solana-labs/solana-program-library/blob/master/memo/program/src/processor.rs
func Instruction(data string) (solana.Instruction, error) {
	if len(data) == 0 || len(data) > MaxMemoSize {
		return solana.Instruction{}, errors.Wrapf(ErrInvalidMemo, "length %d outside [1, %d]", len(data), MaxMemoSize)
	}
	if !utf8.ValidString(data) {
		return solana.Instruction{}, errors.Wrap(ErrInvalidMemo, "not valid utf-8")
	}

	return solana.NewInstruction(
		ProgramKey,
		[]byte(data),
	), nil
}

type DecompiledMemo struct {
	Data []byte
}

func DecompileMemo(m solana.Message, index int) (*DecompiledMemo, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return nil, solana.ErrIncorrectProgram
	}

	return &DecompiledMemo{Data: i.Data}, nil
}
