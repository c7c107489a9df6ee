package main

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/code-nft-staking/pkg/solana/staking"
	"github.com/code-payments/code-nft-staking/pkg/solana/token"
	"github.com/code-payments/code-nft-staking/pkg/stakestore"
)

func (c *cli) showStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-store [store]",
		Short: "Fetch and decode a stake store account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := c.requiredKey("program")
			if err != nil {
				return err
			}

			var storeKey ed25519.PublicKey
			if len(args) > 0 {
				storeKey, err = parseKey("store", args[0])
			} else {
				storeKey, err = c.requiredKey("store")
			}
			if err != nil {
				return err
			}

			fetcher, err := c.fetcher()
			if err != nil {
				return err
			}

			account, err := stakestore.LoadStoreAccount(cmd.Context(), fetcher, storeKey, program)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "store:        %s\n", base58.Encode(storeKey))
			fmt.Fprintf(c.out, "initialized:  %t\n", account.IsInitialized)
			fmt.Fprintf(c.out, "manager:      %s\n", base58.Encode(account.Manager))
			fmt.Fprintf(c.out, "staked count: %d\n", account.StakedCount)
			fmt.Fprintf(c.out, "stake list:   %s\n", base58.Encode(account.StakeList))
			return nil
		},
	}
}

func (c *cli) showListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-list",
		Short: "Fetch and decode the stake list of a store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := flagKey(cmd, "owner", false)
			if err != nil {
				return err
			}

			store, err := c.store(cmd.Context())
			if err != nil {
				return err
			}
			fetcher, err := c.fetcher()
			if err != nil {
				return err
			}

			list, err := store.LoadStakeList(cmd.Context(), fetcher)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "stake list: %s\n", base58.Encode(store.Keys().StakeList))
			fmt.Fprintf(c.out, "items:      %d of %d\n", list.Len(), list.Capacity())
			for i, item := range list.Items() {
				if owner != nil && !bytes.Equal(owner, item.Owner) {
					continue
				}
				fmt.Fprintf(
					c.out,
					"%d: owner=%s mint=%s holder=%s staked_at=%s\n",
					i,
					base58.Encode(item.Owner),
					base58.Encode(item.TokenMint),
					base58.Encode(item.Holder),
					item.StakedAt().Format(time.RFC3339),
				)
			}
			return nil
		},
	}

	cmd.Flags().String("owner", "", "only print items staked by this owner")
	return cmd
}

func (c *cli) showStakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-stake <stake account>",
		Short: "Fetch and decode a stake token account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stake, err := parseKey("stake", args[0])
			if err != nil {
				return err
			}
			mint, err := flagKey(cmd, "mint", true)
			if err != nil {
				return err
			}
			user, err := flagKey(cmd, "user", false)
			if err != nil {
				return err
			}

			fetcher, err := c.fetcher()
			if err != nil {
				return err
			}

			account, err := token.NewClient(fetcher, mint).GetAccount(cmd.Context(), stake)
			if err != nil {
				return errors.Wrapf(err, "failed to get stake account %s", base58.Encode(stake))
			}

			fmt.Fprintf(c.out, "stake:  %s\n", base58.Encode(stake))
			fmt.Fprintf(c.out, "mint:   %s\n", base58.Encode(account.Mint))
			fmt.Fprintf(c.out, "owner:  %s\n", base58.Encode(account.Owner))
			fmt.Fprintf(c.out, "amount: %d\n", account.Amount)
			fmt.Fprintf(c.out, "state:  %s\n", account.State)

			if user != nil {
				program, err := c.requiredKey("program")
				if err != nil {
					return err
				}
				pda, _, err := staking.GetTransientStakeAddress(program, &staking.GetTransientStakeAddressArgs{
					Owner: user,
					Mint:  mint,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "staked: %t\n", bytes.Equal(account.Owner, pda))
			}
			return nil
		},
	}

	cmd.Flags().String("mint", "", "mint the stake account holds")
	cmd.Flags().String("user", "", "owner to check the transient stake authority for")
	return cmd
}
