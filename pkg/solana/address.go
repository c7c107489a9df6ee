package solana

import (
	"crypto/ed25519"
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidPublicKey      = errors.New("invalid public key")
	ErrNoViableBumpSeed      = errors.New("no viable bump seed")
)

// CreateProgramAddress mirrors the Solana SDK's create_program_address.
//
// Program addresses must not lie on the ed25519 curve, so that no private key
// exists for them. ErrInvalidPublicKey is returned when the seeds hash onto
// the curve.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L158
func CreateProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return nil, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return nil, ErrMaxSeedLengthExceeded
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(pdaMarker))

	var pub [32]byte
	copy(pub[:], h.Sum(nil))

	// x/crypto keeps the point type internal, so decompression goes through
	// the standalone edwards25519 package.
	var A edwards25519.ExtendedGroupElement
	if A.FromBytes(&pub) {
		return nil, ErrInvalidPublicKey
	}

	return pub[:], nil
}

// FindProgramAddressAndBump mirrors the Solana SDK's find_program_address and
// returns the address along with the bump seed that produced it.
//
// Reference: https://github.com/solana-labs/solana/blob/5548e599fe4920b71766e0ad1d121755ce9c63d5/sdk/program/src/pubkey.rs#L234
func FindProgramAddressAndBump(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	withBump := append(append([][]byte{}, seeds...), bumpSeed)

	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, withBump...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return nil, 0, err
		}

		bumpSeed[0]--
	}

	return nil, 0, errors.Wrapf(ErrNoViableBumpSeed, "program %s", base58.Encode(program))
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
