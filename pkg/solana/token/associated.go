package token

import (
	"crypto/ed25519"

	"github.com/code-payments/code-nft-staking/pkg/solana"
)

// AssociatedTokenAccountProgramKey  is the address of the associated token account program that should be used.
//
// Current key: ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL
var AssociatedTokenAccountProgramKey = ed25519.PublicKey{140, 151, 37, 143, 78, 36, 137, 241, 187, 61, 16, 41, 20, 142, 13, 131, 11, 90, 19, 153, 218, 255, 16, 132, 4, 142, 123, 216, 219, 233, 248, 89}

// GetAssociatedAccount returns the associated account address for an SPL token.
//
// Reference: https://spl.solana.com/associated-token-account#finding-the-associated-token-account-address
func GetAssociatedAccount(wallet, mint ed25519.PublicKey) (ed25519.PublicKey, error) {
	return GetAssociatedAccountForProgram(wallet, mint, ProgramKey)
}

// GetAssociatedAccountForProgram derives the associated account of a mint
// managed by tokenProgram, which is part of the seeds.
func GetAssociatedAccountForProgram(wallet, mint, tokenProgram ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.FindProgramAddress(
		AssociatedTokenAccountProgramKey,
		wallet,
		tokenProgram,
		mint,
	)
}
