package main

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/computebudget"
	"github.com/code-payments/code-nft-staking/pkg/solana/memo"
	"github.com/code-payments/code-nft-staking/pkg/solana/staking"
	"github.com/code-payments/code-nft-staking/pkg/solana/token"
)

func addTransactionFlags(cmd *cobra.Command) {
	cmd.Flags().String("blockhash", "", "recent blockhash to embed (base58); left zeroed when omitted")
	cmd.Flags().String("memo", "", "memo to attach to the transaction")
	cmd.Flags().Uint32("compute-unit-limit", 0, "compute unit limit; the runtime default applies when zero")
	cmd.Flags().Uint64("compute-unit-price", 0, "priority fee in micro-lamports per compute unit")
}

// wrapInstructions surrounds the staking instructions with the optional
// compute budget and memo instructions requested on the command line.
func wrapInstructions(cmd *cobra.Command, instructions []solana.Instruction) ([]solana.Instruction, error) {
	limit, err := cmd.Flags().GetUint32("compute-unit-limit")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get compute-unit-limit flag")
	}
	price, err := cmd.Flags().GetUint64("compute-unit-price")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get compute-unit-price flag")
	}
	text, err := cmd.Flags().GetString("memo")
	if err != nil {
		return nil, errors.Wrap(err, "failed to get memo flag")
	}

	var wrapped []solana.Instruction
	if limit > 0 {
		wrapped = append(wrapped, computebudget.SetComputeUnitLimit(limit))
	}
	if price > 0 {
		wrapped = append(wrapped, computebudget.SetComputeUnitPrice(price))
	}
	wrapped = append(wrapped, instructions...)
	if len(text) > 0 {
		memoInstruction, err := memo.Instruction(text)
		if err != nil {
			return nil, err
		}
		wrapped = append(wrapped, memoInstruction)
	}
	return wrapped, nil
}

// printTransaction writes the unsigned transaction followed by the keys that
// must sign it.
func (c *cli) printTransaction(cmd *cobra.Command, payer ed25519.PublicKey, instructions []solana.Instruction) error {
	instructions, err := wrapInstructions(cmd, instructions)
	if err != nil {
		return err
	}

	tx := solana.NewTransaction(payer, instructions...)

	blockhash, err := cmd.Flags().GetString("blockhash")
	if err != nil {
		return errors.Wrap(err, "failed to get blockhash flag")
	}
	if len(blockhash) > 0 {
		decoded, err := base58.Decode(blockhash)
		if err != nil || len(decoded) != len(solana.Blockhash{}) {
			return errors.Errorf("invalid blockhash %q", blockhash)
		}

		var bh solana.Blockhash
		copy(bh[:], decoded)
		tx.SetBlockhash(bh)
	}

	if len(tx.Marshal()) > solana.MaxTransactionSize {
		return errors.Errorf("transaction exceeds %d bytes", solana.MaxTransactionSize)
	}

	fmt.Fprintf(c.out, "transaction: %s\n", tx.ToBase64())
	for _, signer := range tx.RequiredSigners() {
		fmt.Fprintf(c.out, "signer: %s\n", base58.Encode(signer))
	}
	return nil
}

func (c *cli) createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a transaction that allocates and initializes a stake store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payer, err := flagKey(cmd, "payer", true)
			if err != nil {
				return err
			}
			storeLamports, err := cmd.Flags().GetUint64("store-lamports")
			if err != nil {
				return errors.Wrap(err, "failed to get store-lamports flag")
			}
			listLamports, err := cmd.Flags().GetUint64("list-lamports")
			if err != nil {
				return errors.Wrap(err, "failed to get list-lamports flag")
			}

			// The accounts don't exist yet, so nothing can be loaded.
			for _, name := range []string{"list", "manager"} {
				if _, err := c.requiredKey(name); err != nil {
					return err
				}
			}

			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}

			instructions, err := store.CreateStoreInstructions(payer, storeLamports, listLamports)
			if err != nil {
				return err
			}
			return c.printTransaction(cmd, payer, instructions)
		},
	}

	cmd.Flags().String("payer", "", "fee payer and funder of the new accounts")
	cmd.Flags().Uint64("store-lamports", 0, "lamports to fund the store account with")
	cmd.Flags().Uint64("list-lamports", 0, "lamports to fund the list account with")
	addTransactionFlags(cmd)
	return cmd
}

func (c *cli) stakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Build a transaction that stakes the token held by a stake account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := flagKey(cmd, "user", true)
			if err != nil {
				return err
			}
			mint, err := flagKey(cmd, "mint", true)
			if err != nil {
				return err
			}
			stake, err := flagKey(cmd, "stake", true)
			if err != nil {
				return err
			}
			from, err := flagKey(cmd, "from", false)
			if err != nil {
				return err
			}
			fund, err := cmd.Flags().GetBool("fund")
			if err != nil {
				return errors.Wrap(err, "failed to get fund flag")
			}
			rawAmount, err := cmd.Flags().GetString("amount")
			if err != nil {
				return errors.Wrap(err, "failed to get amount flag")
			}
			amount, err := staking.ParseAmount(rawAmount)
			if err != nil {
				return err
			}

			if from != nil && fund {
				return errors.New("--from and --fund are mutually exclusive")
			}

			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}

			// The funding transfer goes through the same token program the
			// stake instruction is bound to.
			tokenProgram := store.Keys().TokenProgram
			if fund {
				from, err = token.GetAssociatedAccountForProgram(user, mint, tokenProgram)
				if err != nil {
					return errors.Wrap(err, "failed to derive associated token account")
				}
			}

			var instructions []solana.Instruction
			if from != nil {
				instructions = append(instructions, token.Transfer(tokenProgram, from, stake, user, amount))
			}

			stakeInstructions, err := store.Stake(user, mint, stake, amount)
			if err != nil {
				return err
			}
			instructions = append(instructions, stakeInstructions...)

			return c.printTransaction(cmd, user, instructions)
		},
	}

	cmd.Flags().String("user", "", "owner of the token being staked")
	cmd.Flags().String("mint", "", "mint of the token being staked")
	cmd.Flags().String("stake", "", "token account holding the token to stake")
	cmd.Flags().String("amount", "1", "amount to stake, decimal or 0x-prefixed hex")
	cmd.Flags().String("from", "", "token account to move the amount from into the stake account first")
	cmd.Flags().Bool("fund", false, "move the amount from the user's associated token account first")
	addTransactionFlags(cmd)
	return cmd
}

func (c *cli) reclaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reclaim",
		Short: "Build a transaction that reclaims a staked token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := flagKey(cmd, "user", true)
			if err != nil {
				return err
			}
			mint, err := flagKey(cmd, "mint", true)
			if err != nil {
				return err
			}
			stake, err := flagKey(cmd, "stake", true)
			if err != nil {
				return err
			}
			pda, err := flagKey(cmd, "pda", false)
			if err != nil {
				return err
			}

			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}

			if pda == nil {
				pda, err = store.TransientStakeAddress(user, mint)
				if err != nil {
					return err
				}
			}

			instructions, err := store.Reclaim(user, mint, stake, pda)
			if err != nil {
				return err
			}
			return c.printTransaction(cmd, user, instructions)
		},
	}

	cmd.Flags().String("user", "", "owner of the staked token")
	cmd.Flags().String("mint", "", "mint of the staked token")
	cmd.Flags().String("stake", "", "token account holding the staked token")
	cmd.Flags().String("pda", "", "transient stake authority; derived when omitted")
	addTransactionFlags(cmd)
	return cmd
}
