package staking

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected uint64
	}{
		{"0", 0},
		{"1", 1},
		{" 42 ", 42},
		{"18446744073709551615", math.MaxUint64},
		{"9223372036854788153", 1<<63 + 12345},
		{"0x0", 0},
		{"0x00ff", 255},
		{"0XFF", 255},
		{"0xffffffffffffffff", math.MaxUint64},
	} {
		actual, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.expected, actual, tc.in)
	}

	for _, in := range []string{
		"",
		"  ",
		"-1",
		"18446744073709551616",
		"0x10000000000000000",
		"0x",
		"1.5",
		"abc",
		"0xzz",
	} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidArgument, in)
	}
}

func TestAmountFromBig(t *testing.T) {
	actual, err := AmountFromBig(new(big.Int).SetUint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), actual)

	actual, err = AmountFromBig(big.NewInt(0))
	require.NoError(t, err)
	assert.Zero(t, actual)

	tooLarge := new(big.Int).Lsh(big.NewInt(1), 64)
	for _, v := range []*big.Int{
		nil,
		big.NewInt(-1),
		tooLarge,
		new(big.Int).Lsh(big.NewInt(1), 300),
	} {
		_, err := AmountFromBig(v)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}
