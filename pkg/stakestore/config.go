package stakestore

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/config"
	"github.com/code-payments/code-nft-staking/pkg/config/env"
	"github.com/code-payments/code-nft-staking/pkg/config/memory"
	"github.com/code-payments/code-nft-staking/pkg/config/wrapper"
	"github.com/code-payments/code-nft-staking/pkg/solana"
	"github.com/code-payments/code-nft-staking/pkg/solana/token"
)

const (
	envConfigPrefix = "STAKE_STORE_"

	ProgramIDConfigEnvName = envConfigPrefix + "PROGRAM_ID"

	TokenProgramIDConfigEnvName = envConfigPrefix + "TOKEN_PROGRAM_ID"

	StoreAccountConfigEnvName = envConfigPrefix + "STORE_ACCOUNT"

	ListAccountConfigEnvName = envConfigPrefix + "LIST_ACCOUNT"

	ManagerConfigEnvName = envConfigPrefix + "MANAGER"

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "finalized"
)

type conf struct {
	programID      config.PublicKey
	tokenProgramID config.PublicKey
	storeAccount   config.PublicKey
	listAccount    config.PublicKey
	manager        config.PublicKey
	commitment     config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			programID:      env.NewPublicKeyConfig(ProgramIDConfigEnvName, nil),
			tokenProgramID: env.NewPublicKeyConfig(TokenProgramIDConfigEnvName, token.ProgramKey),
			storeAccount:   env.NewPublicKeyConfig(StoreAccountConfigEnvName, nil),
			listAccount:    env.NewPublicKeyConfig(ListAccountConfigEnvName, nil),
			manager:        env.NewPublicKeyConfig(ManagerConfigEnvName, nil),
			commitment:     env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
		}
	}
}

type testOverrides struct {
	programID      ed25519.PublicKey
	tokenProgramID ed25519.PublicKey
	storeAccount   ed25519.PublicKey
	listAccount    ed25519.PublicKey
	manager        ed25519.PublicKey
	commitment     string
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		commitment := overrides.commitment
		if len(commitment) == 0 {
			commitment = defaultCommitment
		}

		return &conf{
			programID:      wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.programID), nil),
			tokenProgramID: wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.tokenProgramID), token.ProgramKey),
			storeAccount:   wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.storeAccount), nil),
			listAccount:    wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.listAccount), nil),
			manager:        wrapper.NewPublicKeyConfig(memory.NewConfig(overrides.manager), nil),
			commitment:     wrapper.NewStringConfig(memory.NewConfig(commitment), defaultCommitment),
		}
	}
}

// NewStoreFromConfig binds a Store entirely from configuration.
func NewStoreFromConfig(ctx context.Context, configProvider ConfigProvider) (*Store, error) {
	cfg := configProvider()

	keys := &Keys{}
	for _, v := range []struct {
		dst *ed25519.PublicKey
		src config.PublicKey
	}{
		{&keys.Program, cfg.programID},
		{&keys.TokenProgram, cfg.tokenProgramID},
		{&keys.StakeStore, cfg.storeAccount},
		{&keys.StakeList, cfg.listAccount},
		{&keys.Manager, cfg.manager},
	} {
		key, err := v.src.GetSafe(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "invalid stake store config")
		}
		*v.dst = key
	}

	return NewStore(keys)
}

// LoadFromConfig loads the configured stake store over RPC. The list and
// manager come from the store account rather than configuration.
func LoadFromConfig(ctx context.Context, client solana.Client, configProvider ConfigProvider) (*Store, error) {
	cfg := configProvider()

	program, err := cfg.programID.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid program id config")
	}
	storeKey, err := cfg.storeAccount.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid store account config")
	}
	tokenProgram, err := cfg.tokenProgramID.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid token program id config")
	}
	commitment, err := solana.CommitmentFromString(cfg.commitment.Get(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "invalid commitment config")
	}

	return Load(ctx, solana.NewAccountFetcher(client, commitment), storeKey, program, tokenProgram)
}
