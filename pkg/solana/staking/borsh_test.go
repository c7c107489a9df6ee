package staking

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-nft-staking/pkg/testutil"
)

// Mirrors of the program's Borsh structs, used to check the hand written
// codecs against an independent implementation.

type borshStakeStore struct {
	IsInitialized bool
	Manager       [32]byte
	StakedCount   uint16
	StakeList     [32]byte
}

type borshStakedItem struct {
	Owner     [32]byte
	TokenMint [32]byte
	Holder    [32]byte
	StakeTime uint64
}

type borshStakeList struct {
	IsInitialized bool
	MaxItems      uint16
	Count         uint16
	Items         [3]borshStakedItem
}

func toArray(t *testing.T, b []byte) [32]byte {
	require.Len(t, b, 32)
	var res [32]byte
	copy(res[:], b)
	return res
}

func TestStakeStoreAccount_Borsh(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	store := &StakeStoreAccount{
		IsInitialized: true,
		Manager:       keys[0],
		StakedCount:   513,
		StakeList:     keys[1],
	}

	expected, err := borsh.Serialize(borshStakeStore{
		IsInitialized: true,
		Manager:       toArray(t, keys[0]),
		StakedCount:   513,
		StakeList:     toArray(t, keys[1]),
	})
	require.NoError(t, err)
	assert.Equal(t, expected, store.Marshal())

	var mirror borshStakeStore
	require.NoError(t, borsh.Deserialize(&mirror, store.Marshal()))
	assert.True(t, mirror.IsInitialized)
	assert.EqualValues(t, 513, mirror.StakedCount)
	assert.Equal(t, toArray(t, keys[1]), mirror.StakeList)
}

func TestStakeListAccount_Borsh(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 6)

	list := NewStakeListAccount(3)
	list.Header.IsInitialized = true
	require.NoError(t, list.Append(
		StakedItem{Owner: keys[0], TokenMint: keys[1], Holder: keys[2], StakeTime: 1<<63 + 12345},
		StakedItem{Owner: keys[3], TokenMint: keys[4], Holder: keys[5], StakeTime: 1700000000},
	))

	mirror := borshStakeList{
		IsInitialized: true,
		MaxItems:      3,
		Count:         2,
	}
	mirror.Items[0] = borshStakedItem{
		Owner:     toArray(t, keys[0]),
		TokenMint: toArray(t, keys[1]),
		Holder:    toArray(t, keys[2]),
		StakeTime: 1<<63 + 12345,
	}
	mirror.Items[1] = borshStakedItem{
		Owner:     toArray(t, keys[3]),
		TokenMint: toArray(t, keys[4]),
		Holder:    toArray(t, keys[5]),
		StakeTime: 1700000000,
	}

	expected, err := borsh.Serialize(mirror)
	require.NoError(t, err)
	require.Len(t, expected, GetStakeListAccountSize(3))
	assert.Equal(t, expected, list.Marshal())

	var actual StakeListAccount
	require.NoError(t, actual.Unmarshal(expected))
	assert.Equal(t, list.Items(), actual.Items())
}
