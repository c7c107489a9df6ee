package staking

import (
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// AmountFromBig converts an arbitrary precision amount to the program's u64.
func AmountFromBig(v *big.Int) (uint64, error) {
	if v == nil {
		return 0, errors.Wrap(ErrInvalidArgument, "nil amount")
	}
	if v.Sign() < 0 {
		return 0, errors.Wrapf(ErrInvalidArgument, "negative amount %s", v.String())
	}

	u, overflow := uint256.FromBig(v)
	if overflow || !u.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidArgument, "amount %s exceeds 64 bits", v.String())
	}
	return u.Uint64(), nil
}

// ParseAmount parses a decimal or 0x-prefixed hex amount.
func ParseAmount(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidArgument, "empty amount")
	}

	var u *uint256.Int
	var err error
	if lower := strings.ToLower(s); strings.HasPrefix(lower, "0x") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" && len(s) > 2 {
			digits = "0"
		}
		u, err = uint256.FromHex("0x" + digits)
	} else {
		u, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "invalid amount %q: %v", s, err)
	}

	if !u.IsUint64() {
		return 0, errors.Wrapf(ErrInvalidArgument, "amount %s exceeds 64 bits", s)
	}
	return u.Uint64(), nil
}
