package staking

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

var TransientPrefix = []byte("transient")

type GetTransientStakeAddressArgs struct {
	Owner ed25519.PublicKey
	Mint  ed25519.PublicKey
}

// GetTransientStakeAddress derives the program authority that holds a staked
// token account until it is reclaimed.
func GetTransientStakeAddress(program ed25519.PublicKey, args *GetTransientStakeAddressArgs) (ed25519.PublicKey, uint8, error) {
	if err := checkProgram(program); err != nil {
		return nil, 0, err
	}
	if args == nil {
		return nil, 0, errors.Wrap(ErrInvalidArgument, "owner and mint are required")
	}
	if err := checkKey("owner", args.Owner); err != nil {
		return nil, 0, err
	}
	if err := checkKey("mint", args.Mint); err != nil {
		return nil, 0, err
	}

	return solana.FindProgramAddressAndBump(
		program,
		TransientPrefix,
		args.Owner,
		args.Mint,
	)
}
