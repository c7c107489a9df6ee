package solana

import (
	"bytes"
	"crypto/ed25519"
	"encoding/base64"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Taken from: https://github.com/solana-labs/solana/blob/14339dec0a960e8161d1165b6a8e5cfb73e78f23/sdk/src/transaction.rs#L523
const rustGenerated = "AUc7Cbu+gZalFSGeSFdukHhP7oSGaSdmdNEd5ZokaSysdoMWfIOzjrAbdaBZZuDMAfyNAogAJdrhgVya+jthsgoBAAEDnON0wdcmjhYIDuXvd10F2qEjAyEAJGSe/CGhYbk+WWMBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

// The above example does not have the correct public key encoded in the keypair.
// This is the above example with the correctly generated keypair.
const rustGeneratedAdjusted = "ATMfBMZ8phHEheLph8K9TJhRKhnE4qNZvWiXdUdJRmlTCRsQjWmW2CkQJeRHBCcsqFm2gynjL40M9mTe0Dxp4QIBAAEDfEya6wnC7f3Cv53qnOEywwIJ928rIdqAlfXYI1adXroBAQEEBQYHCAkJCQkJCQkJCQkJCQkJCQkIBwYFBAEBAQICAgQFBgcICQEBAQEBAQEBAQEBAQEBCQgHBgUEAgICAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABAgIAAQMBAgM="

func TestTransaction_CrossImpl(t *testing.T) {
	keypair := ed25519.PrivateKey{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75, 156, 227, 116, 193, 215, 38, 142, 22, 8,
		14, 229, 239, 119, 93, 5, 218, 161, 35, 3, 33, 0, 36, 100, 158, 252, 33, 161, 97, 185,
		62, 89, 99}
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))

	generated, err := base64.StdEncoding.DecodeString(rustGenerated)
	require.NoError(t, err)
	assert.Equal(t, generated, tx.Marshal())
}

func TestTransaction_GenerateValidCrossImpl(t *testing.T) {
	keypair := ed25519.NewKeyFromSeed([]byte{48, 83, 2, 1, 1, 48, 5, 6, 3, 43, 101, 112, 4, 34, 4, 32, 255, 101, 36, 24, 124, 23,
		167, 21, 132, 204, 155, 5, 185, 58, 121, 75})
	programID := ed25519.PublicKey{2, 2, 2, 4, 5, 6, 7, 8, 9, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 8, 7, 6, 5, 4,
		2, 2, 2}
	to := ed25519.PublicKey{1, 1, 1, 4, 5, 6, 7, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 8, 7, 6, 5, 4, 1, 1, 1}

	tx := NewTransaction(
		keypair.Public().(ed25519.PublicKey),
		NewInstruction(
			programID,
			[]byte{1, 2, 3},
			NewAccountMeta(keypair.Public().(ed25519.PublicKey), true),
			NewAccountMeta(to, false),
		),
	)
	require.NoError(t, tx.Sign(keypair))
	assert.Equal(t, rustGeneratedAdjusted, base64.StdEncoding.EncodeToString(tx.Marshal()))
}

func TestTransaction_EmptyAccount(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		pub,
		NewInstruction(
			program,
			[]byte{1, 2, 3},
			NewAccountMeta(nil, false),
		),
	)
	assert.NoError(t, tx.Sign(priv))

	var rtt Transaction
	assert.NoError(t, rtt.Unmarshal(tx.Marshal()))
}

func TestTransaction_MissingBlockhash(t *testing.T) {
	program, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	tx := NewTransaction(
		pub,
		NewInstruction(
			program,
			[]byte{1, 2, 3},
			NewAccountMeta(pub, false),
		),
	)
	assert.NoError(t, tx.Sign(priv))

	var rtt Transaction
	assert.NoError(t, rtt.Unmarshal(tx.Marshal()))
}

func TestTransaction_InvalidAccounts(t *testing.T) {
	keys := generateKeys(t, 2)
	tx := NewTransaction(
		public(keys[0]),
		NewInstruction(
			public(keys[1]),
			nil,
			NewAccountMeta(public(keys[0]), true),
		),
	)
	tx.Message.Instructions[0].ProgramIndex = 2
	assert.Error(t, tx.Unmarshal(tx.Marshal()))

	tx = NewTransaction(
		public(keys[0]),
		NewInstruction(
			public(keys[1]),
			nil,
			NewAccountMeta(public(keys[0]), true),
		),
	)
	tx.Message.Instructions[0].Accounts = []byte{2}
	assert.Error(t, tx.Unmarshal(tx.Marshal()))
}

func TestTransaction_SingleInstruction(t *testing.T) {
	keys := generateKeys(t, 2)
	payer := keys[0]
	program := keys[1]

	keys = generateKeys(t, 4)
	data := []byte{1, 2, 3}

	tx := NewTransaction(
		public(payer),
		NewInstruction(
			public(program),
			data,
			NewReadonlyAccountMeta(public(keys[0]), true),
			NewReadonlyAccountMeta(public(keys[1]), false),
			NewAccountMeta(public(keys[2]), false),
			NewAccountMeta(public(keys[3]), true),
		),
	)

	// Intentionally sign out of order to ensure ordering is fixed.
	assert.NoError(t, tx.Sign(keys[0], keys[3], payer))

	require.Len(t, tx.Signatures, 3)
	require.Len(t, tx.Message.Accounts, 6)
	assert.EqualValues(t, 3, tx.Message.Header.NumSignatures)
	assert.EqualValues(t, 1, tx.Message.Header.NumReadonlySigned)
	assert.EqualValues(t, 2, tx.Message.Header.NumReadOnly)

	message := tx.Message.Marshal()

	assert.True(t, ed25519.Verify(public(payer), message, tx.Signatures[0][:]))
	assert.True(t, ed25519.Verify(public(keys[3]), message, tx.Signatures[1][:]))
	assert.True(t, ed25519.Verify(public(keys[0]), message, tx.Signatures[2][:]))

	assert.Equal(t, public(payer), tx.Message.Accounts[0])
	assert.Equal(t, public(keys[3]), tx.Message.Accounts[1])
	assert.Equal(t, public(keys[0]), tx.Message.Accounts[2])
	assert.Equal(t, public(keys[2]), tx.Message.Accounts[3])
	assert.Equal(t, public(keys[1]), tx.Message.Accounts[4])
	assert.Equal(t, public(program), tx.Message.Accounts[5])

	assert.Equal(t, byte(5), tx.Message.Instructions[0].ProgramIndex)
	assert.Equal(t, data, tx.Message.Instructions[0].Data)
	assert.Equal(t, []byte{2, 4, 3, 1}, tx.Message.Instructions[0].Accounts)
}

func TestTransaction_MergedAccountFlags(t *testing.T) {
	type flags struct {
		signer, writable bool
	}

	for _, tc := range []struct {
		name     string
		first    flags
		second   flags
		expected flags
	}{
		{"readonly", flags{}, flags{}, flags{}},
		{"readonly signer then writable", flags{signer: true}, flags{writable: true}, flags{true, true}},
		{"writable then readonly", flags{writable: true}, flags{}, flags{writable: true}},
		{"writable signer then readonly", flags{true, true}, flags{}, flags{true, true}},
		{"readonly then readonly signer", flags{}, flags{signer: true}, flags{signer: true}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			keys := generateKeys(t, 4)
			payer, account, first, second := public(keys[0]), public(keys[1]), public(keys[2]), public(keys[3])

			tx := NewTransaction(
				payer,
				NewInstruction(first, []byte{1}, AccountMeta{PublicKey: account, IsSigner: tc.first.signer, IsWritable: tc.first.writable}),
				NewInstruction(second, []byte{2}, AccountMeta{PublicKey: account, IsSigner: tc.second.signer, IsWritable: tc.second.writable}),
			)

			require.Len(t, tx.Message.Accounts, 4)
			assert.Equal(t, payer, tx.Message.Accounts[0])
			assert.Equal(t, account, tx.Message.Accounts[1])

			// Programs sort last, by key.
			programs := []ed25519.PublicKey{first, second}
			sort.Slice(programs, func(i, j int) bool {
				return bytes.Compare(programs[i], programs[j]) < 0
			})
			assert.Equal(t, programs, tx.Message.Accounts[2:])

			assert.Equal(t, tc.expected.signer, tx.Message.IsSigner(1))
			assert.Equal(t, tc.expected.writable, tx.Message.IsWritable(1))
			assert.False(t, tx.Message.IsWritable(2))
			assert.False(t, tx.Message.IsWritable(3))

			for _, instruction := range tx.Message.Instructions {
				assert.Equal(t, []byte{1}, instruction.Accounts)
			}
			assert.Equal(t, byte(indexOf(tx.Message.Accounts, first)), tx.Message.Instructions[0].ProgramIndex)
			assert.Equal(t, byte(indexOf(tx.Message.Accounts, second)), tx.Message.Instructions[1].ProgramIndex)

			var rtt Transaction
			require.NoError(t, rtt.Unmarshal(tx.Marshal()))
			assert.Equal(t, tx.Message, rtt.Message)
		})
	}
}

func TestTransaction_RequiredSigners(t *testing.T) {
	keys := generateKeys(t, 4)
	payer := keys[0]

	tx := NewTransaction(
		public(payer),
		NewInstruction(
			public(keys[1]),
			[]byte{9},
			NewReadonlyAccountMeta(public(keys[2]), true),
			NewAccountMeta(public(keys[3]), false),
		),
	)

	signers := tx.RequiredSigners()
	require.Len(t, signers, 2)
	assert.Equal(t, public(payer), signers[0])
	assert.Equal(t, public(keys[2]), signers[1])

	assert.True(t, tx.Message.IsSigner(0))
	assert.True(t, tx.Message.IsWritable(0))
	assert.True(t, tx.Message.IsSigner(1))
	assert.False(t, tx.Message.IsWritable(1))
	assert.False(t, tx.Message.IsSigner(2))
	assert.True(t, tx.Message.IsWritable(2))
	assert.False(t, tx.Message.IsWritable(3))

	// keys[3] is writable but not a signer.
	assert.Error(t, tx.Sign(keys[3]))

	unrelated := generateKeys(t, 1)
	assert.Error(t, tx.Sign(unrelated[0]))
}

func TestTransaction_BlockhashAndBase64(t *testing.T) {
	keys := generateKeys(t, 2)

	tx := NewTransaction(
		public(keys[0]),
		NewInstruction(public(keys[1]), []byte{1}),
	)

	var bh Blockhash
	for i := range bh {
		bh[i] = byte(i)
	}
	tx.SetBlockhash(bh)
	require.NoError(t, tx.Sign(keys[0]))

	decoded, err := base64.StdEncoding.DecodeString(tx.ToBase64())
	require.NoError(t, err)

	var rtt Transaction
	require.NoError(t, rtt.Unmarshal(decoded))
	assert.Equal(t, bh, rtt.Message.RecentBlockhash)
	assert.Equal(t, tx.Signatures, rtt.Signatures)
	assert.Contains(t, tx.String(), tx.Signatures[0].ToBase58())
}

func TestMessage_UnmarshalRejectsVersioned(t *testing.T) {
	var m Message
	assert.Error(t, m.Unmarshal(nil))
	assert.Error(t, m.Unmarshal([]byte{0x80, 1, 0, 0}))
}

func public(priv ed25519.PrivateKey) ed25519.PublicKey {
	return priv.Public().(ed25519.PublicKey)
}

func generateKeys(t *testing.T, amount int) []ed25519.PrivateKey {
	keys := make([]ed25519.PrivateKey, amount)

	for i := 0; i < amount; i++ {
		_, priv, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = priv
	}

	return keys
}
