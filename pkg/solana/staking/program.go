package staking

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

// MaxItems is the largest stake list the program can allocate.
const MaxItems = 65535

var (
	// ErrMalformedBuffer is returned when an account buffer is too short for
	// the field being decoded.
	ErrMalformedBuffer = binary.ErrMalformedBuffer

	// ErrInvalidState is returned when an account is not initialized, or its
	// initialization flag holds something other than 0 or 1.
	ErrInvalidState = errors.New("invalid account state")

	// ErrOwnershipMismatch is returned when a fetched account is not owned by
	// the staking program.
	ErrOwnershipMismatch = errors.New("account owner mismatch")

	// ErrInvalidArgument is returned for missing or malformed keys and for
	// amounts outside the unsigned 64-bit range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityExceeded is returned when a stake list claims more items than
	// its capacity or its buffer can hold.
	ErrCapacityExceeded = errors.New("stake list capacity exceeded")
)

func checkKey(name string, key ed25519.PublicKey) error {
	if len(key) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidArgument, "%s: expected %d byte key, got %d", name, ed25519.PublicKeySize, len(key))
	}
	return nil
}

func encodeKey(key ed25519.PublicKey) string {
	if key == nil {
		return ""
	}
	return base58.Encode(key)
}
