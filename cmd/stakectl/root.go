package main

import (
	"context"
	"crypto/ed25519"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/stakestore"
)

const envPrefix = "STAKECTL"

type cli struct {
	v   *viper.Viper
	out io.Writer
	log *logrus.Entry
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		v:   viper.New(),
		out: stdout,
		log: logrus.StandardLogger().WithField("type", "cmd/stakectl"),
	}

	root := &cobra.Command{
		Use:           "stakectl",
		Short:         "Inspect NFT staking accounts and build unsigned staking transactions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.configure(stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "optional config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String("rpc", "devnet", "RPC endpoint URL or cluster moniker (localnet, devnet, testnet, mainnet-beta)")
	flags.String("commitment", "confirmed", "commitment level for account reads (processed, confirmed, finalized)")
	flags.String("program", "", "staking program id")
	flags.String("store", "", "stake store account")
	flags.String("list", "", "stake list account; loaded from the store when omitted")
	flags.String("manager", "", "stake store manager; loaded from the store when omitted")
	flags.String("token-program", "", "token program id (defaults to the SPL token program)")

	_ = c.v.BindPFlags(flags)
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		c.sizesCmd(),
		c.showStoreCmd(),
		c.showListCmd(),
		c.showStakeCmd(),
		c.createCmd(),
		c.stakeCmd(),
		c.reclaimCmd(),
	)

	wrapErrors(root, stderr, c.log)
	return root
}

// wrapErrors logs command failures once, at the root.
func wrapErrors(root *cobra.Command, stderr io.Writer, log *logrus.Entry) {
	for _, cmd := range root.Commands() {
		runE := cmd.RunE
		if runE == nil {
			continue
		}
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := runE(cmd, args)
			if err != nil {
				log.WithError(err).WithField("command", cmd.Name()).Error("command failed")
			}
			return err
		}
	}
}

func (c *cli) configure(stderr io.Writer) error {
	if path := c.v.GetString("config"); len(path) > 0 {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "failed to load config")
		}
	}

	logrus.SetOutput(stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	logLevel := c.v.GetString("log-level")
	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		c.log.WithField("log_level", logLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	return nil
}

// optionalKey reads a base58 key from a persistent setting, returning nil
// when it is unset.
func (c *cli) optionalKey(name string) (ed25519.PublicKey, error) {
	s := strings.TrimSpace(c.v.GetString(name))
	if len(s) == 0 {
		return nil, nil
	}
	return parseKey(name, s)
}

func (c *cli) requiredKey(name string) (ed25519.PublicKey, error) {
	key, err := c.optionalKey(name)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, errors.Errorf("--%s is required (or %s_%s)", name, envPrefix, strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
	}
	return key, nil
}

func parseKey(name, s string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s key %q", name, s)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid %s key %q: expected %d bytes, got %d", name, s, ed25519.PublicKeySize, len(decoded))
	}
	return decoded, nil
}

func flagKey(cmd *cobra.Command, name string, required bool) (ed25519.PublicKey, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get %s flag", name)
	}
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		if required {
			return nil, errors.Errorf("--%s is required", name)
		}
		return nil, nil
	}
	return parseKey(name, s)
}

func (c *cli) fetcher() (*solana.AccountFetcher, error) {
	commitment, err := solana.CommitmentFromString(c.v.GetString("commitment"))
	if err != nil {
		return nil, err
	}

	endpoint := solana.EnvironmentFromString(c.v.GetString("rpc"))
	c.log.WithField("endpoint", string(endpoint)).Debug("using rpc endpoint")

	return solana.NewAccountFetcher(solana.New(string(endpoint)), commitment), nil
}

// store binds a Store from the persistent settings. The stake list and
// manager are loaded from the store account when either is not provided.
func (c *cli) store(ctx context.Context) (*stakestore.Store, error) {
	program, err := c.requiredKey("program")
	if err != nil {
		return nil, err
	}
	storeKey, err := c.requiredKey("store")
	if err != nil {
		return nil, err
	}
	list, err := c.optionalKey("list")
	if err != nil {
		return nil, err
	}
	manager, err := c.optionalKey("manager")
	if err != nil {
		return nil, err
	}
	tokenProgram, err := c.optionalKey("token-program")
	if err != nil {
		return nil, err
	}

	if list == nil || manager == nil {
		fetcher, err := c.fetcher()
		if err != nil {
			return nil, err
		}

		loaded, err := stakestore.Load(ctx, fetcher, storeKey, program, tokenProgram)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load stake store")
		}
		keys := loaded.Keys()
		list, manager = keys.StakeList, keys.Manager
	}

	return stakestore.NewStore(&stakestore.Keys{
		Program:      program,
		StakeStore:   storeKey,
		StakeList:    list,
		Manager:      manager,
		TokenProgram: tokenProgram,
	})
}
