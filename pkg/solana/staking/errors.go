package staking

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

// ProgramError is the custom error code returned by the staking program.
type ProgramError uint32

const (
	// The account cannot be initialized because it is already in use.
	ProgramErrorAlreadyInUse ProgramError = iota

	// A required signature is missing.
	ProgramErrorSignatureMissing

	// The instruction data could not be unpacked.
	ProgramErrorInvalidInstruction

	// The account is not rent exempt.
	ProgramErrorNotRentExempt

	// The expected amount does not match the token account.
	ProgramErrorExpectedAmountMismatch

	// The staked count overflowed.
	ProgramErrorAmountOverflow

	// The stake list does not belong to the store.
	ProgramErrorInvalidStakeList

	// No active item matches the owner and mint.
	ProgramErrorStakedNFTNotFound

	// An account expected to be an SPL token account did not decode as one.
	ProgramErrorExpectedAccount
)

var programErrorNames = map[ProgramError]string{
	ProgramErrorAlreadyInUse:           "AlreadyInUse",
	ProgramErrorSignatureMissing:       "SignatureMissing",
	ProgramErrorInvalidInstruction:     "InvalidInstruction",
	ProgramErrorNotRentExempt:          "NotRentExempt",
	ProgramErrorExpectedAmountMismatch: "ExpectedAmountMismatch",
	ProgramErrorAmountOverflow:         "AmountOverflow",
	ProgramErrorInvalidStakeList:       "InvalidStakeList",
	ProgramErrorStakedNFTNotFound:      "StakedNFTNotFound",
	ProgramErrorExpectedAccount:        "ExpectedAccount",
}

func (e ProgramError) Error() string {
	if name, ok := programErrorNames[e]; ok {
		return fmt.Sprintf("staking program error: %s", name)
	}
	return fmt.Sprintf("staking program error: unknown(%d)", uint32(e))
}

// GetProgramError extracts the staking program error carried by err, which is
// typically a solana.InstructionError or solana.CustomError.
func GetProgramError(err error) (ProgramError, bool) {
	var ie solana.InstructionError
	if errors.As(err, &ie) {
		err = ie.Err
	}
	var iePtr *solana.InstructionError
	if errors.As(err, &iePtr) && iePtr != nil {
		err = iePtr.Err
	}

	var ce solana.CustomError
	if !errors.As(err, &ce) || ce < 0 {
		return 0, false
	}

	pe := ProgramError(ce)
	if _, ok := programErrorNames[pe]; !ok {
		return 0, false
	}
	return pe, true
}
