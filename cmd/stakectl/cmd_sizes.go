package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/code-nft-staking/pkg/solana/staking"
	"github.com/code-payments/code-nft-staking/pkg/stakestore"
)

func (c *cli) sizesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "Print the allocation sizes of the staking accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := cmd.Flags().GetInt("items")
			if err != nil {
				return errors.Wrap(err, "failed to get items flag")
			}
			if items < 0 || items > staking.MaxItems {
				return errors.Errorf("--items must be within [0, %d]", staking.MaxItems)
			}

			storeSize, _ := stakestore.AccountSizes()
			fmt.Fprintf(c.out, "store account: %d bytes\n", storeSize)
			fmt.Fprintf(c.out, "list header:   %d bytes\n", staking.StakeListHeaderSize)
			fmt.Fprintf(c.out, "list item:     %d bytes\n", staking.StakedItemSize)
			fmt.Fprintf(c.out, "list account:  %d bytes (%d items)\n", staking.GetStakeListAccountSize(items), items)
			return nil
		},
	}

	cmd.Flags().Int("items", staking.MaxItems, "list capacity to size")
	return cmd
}
