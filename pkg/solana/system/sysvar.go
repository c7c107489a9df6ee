package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

var (
	// RentSysVar is read by Initialize to check rent exemption.
	//
	// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/src/sysvar/rent.rs#L11
	RentSysVar = mustDecodeKey("SysvarRent111111111111111111111111111111111")

	// ClockSysVar is read by Stake and Reclaim for the stake time.
	//
	// Source: https://github.com/solana-labs/solana/blob/f02a78d8fff2dd7297dc6ce6eb5a68a3002f5359/sdk/program/src/sysvar/clock.rs#L10
	ClockSysVar = mustDecodeKey("SysvarC1ock11111111111111111111111111111111")
)

func mustDecodeKey(s string) ed25519.PublicKey {
	key, err := base58.Decode(s)
	if err != nil || len(key) != ed25519.PublicKeySize {
		panic("invalid key " + s)
	}
	return key
}
