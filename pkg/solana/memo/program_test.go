package memo

import (
	"crypto/ed25519"
	"strings"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

func TestProgramKey(t *testing.T) {
	assert.Equal(t, solanago.MemoProgramID.Bytes(), []byte(ProgramKey))
}

func TestInstruction(t *testing.T) {
	i, err := Instruction("staked via stakectl")
	require.NoError(t, err)
	assert.Equal(t, ProgramKey, i.Program)
	assert.Empty(t, i.Accounts)
	assert.Equal(t, "staked via stakectl", string(i.Data))

	for _, invalid := range []string{
		"",
		string([]byte{0xff, 0xfe}),
		strings.Repeat("a", MaxMemoSize+1),
	} {
		_, err := Instruction(invalid)
		assert.ErrorIs(t, err, ErrInvalidMemo)
	}
}

func TestDecompile(t *testing.T) {
	i, err := Instruction("hello, world")
	require.NoError(t, err)

	tx := solana.NewTransaction(make([]byte, 32), i)

	decompiled, err := DecompileMemo(tx.Message, 0)
	assert.NoError(t, err)
	assert.Equal(t, "hello, world", string(decompiled.Data))

	_, err = DecompileMemo(tx.Message, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "instruction doesn't exist")

	tx.Message.Accounts[1], _, err = ed25519.GenerateKey(nil)
	require.NoError(t, err)
	_, err = DecompileMemo(tx.Message, 0)
	assert.Equal(t, solana.ErrIncorrectProgram, err)
}
