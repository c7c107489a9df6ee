package env

import (
	"context"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-nft-staking/pkg/config"
)

func TestConfigDoesntExist(t *testing.T) {
	const env = "ENV_CONFIG_TEST_VAR"
	t.Setenv(env, "default")

	v, err := NewConfig(env).Get(context.Background())
	assert.Equal(t, []byte("default"), v)
	assert.Nil(t, err)

	t.Setenv(env, "")

	v, err = NewConfig(env).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestPublicKeyConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_KEY"
	key := make([]byte, 32)
	key[31] = 7

	t.Setenv(env, " "+base58.Encode(key)+"\n")
	actual, err := NewPublicKeyConfig(env, nil).GetSafe(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, key, actual)

	t.Setenv(env, "")
	assert.Nil(t, NewPublicKeyConfig(env, nil).Get(context.Background()))

	t.Setenv(env, "abc")
	_, err = NewPublicKeyConfig(env, nil).GetSafe(context.Background())
	assert.Error(t, err)
}

func TestStringConfig(t *testing.T) {
	const env = "ENV_CONFIG_TEST_STRING"
	t.Setenv(env, "confirmed")
	assert.Equal(t, "confirmed", NewStringConfig(env, "finalized").Get(context.Background()))

	t.Setenv(env, "")
	assert.Equal(t, "finalized", NewStringConfig(env, "finalized").Get(context.Background()))
}
