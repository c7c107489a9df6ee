package staking

import (
	"crypto/ed25519"
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/solana/binary"
)

const StakeStoreAccountSize = (1 + // is_initialized
	32 + // manager
	2 + // staked_count
	32) // stake_list

type StakeStoreAccount struct {
	IsInitialized bool
	Manager       ed25519.PublicKey
	StakedCount   uint16
	StakeList     ed25519.PublicKey
}

func (obj *StakeStoreAccount) Marshal() []byte {
	data := make([]byte, StakeStoreAccountSize)

	var offset int
	binary.PutBool(data, obj.IsInitialized, &offset)
	binary.PutKey32(data, obj.Manager, &offset)
	binary.PutUint16(data, obj.StakedCount, &offset)
	binary.PutKey32(data, obj.StakeList, &offset)

	return data
}

// Unmarshal decodes the store whether or not it has been initialized. Bytes
// past StakeStoreAccountSize are ignored.
func (obj *StakeStoreAccount) Unmarshal(data []byte) error {
	if len(data) < StakeStoreAccountSize {
		return errors.Wrapf(ErrMalformedBuffer, "stake store: expected %d bytes, got %d", StakeStoreAccountSize, len(data))
	}

	var offset int
	var flag uint8
	if err := binary.GetUint8(data, &flag, &offset); err != nil {
		return err
	}
	isInitialized, err := decodeFlag("stake store", flag)
	if err != nil {
		return err
	}

	var decoded StakeStoreAccount
	decoded.IsInitialized = isInitialized
	if err := binary.GetKey32(data, &decoded.Manager, &offset); err != nil {
		return err
	}
	if err := binary.GetUint16(data, &decoded.StakedCount, &offset); err != nil {
		return err
	}
	if err := binary.GetKey32(data, &decoded.StakeList, &offset); err != nil {
		return err
	}

	*obj = decoded
	return nil
}

// UnmarshalInitialized is Unmarshal that also requires the initialized flag.
func (obj *StakeStoreAccount) UnmarshalInitialized(data []byte) error {
	if err := obj.Unmarshal(data); err != nil {
		return err
	}
	if !obj.IsInitialized {
		return errors.Wrap(ErrInvalidState, "stake store is not initialized")
	}
	return nil
}

func (obj *StakeStoreAccount) String() string {
	return fmt.Sprintf(
		"StakeStoreAccount{is_initialized=%t,manager=%s,staked_count=%d,stake_list=%s}",
		obj.IsInitialized,
		encodeKey(obj.Manager),
		obj.StakedCount,
		encodeKey(obj.StakeList),
	)
}

func decodeFlag(record string, flag uint8) (bool, error) {
	switch flag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(ErrInvalidState, "%s: invalid initialization flag %d", record, flag)
	}
}
