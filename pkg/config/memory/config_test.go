package memory

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-nft-staking/pkg/config"
)

func TestConfig(t *testing.T) {
	c := NewConfig(nil)
	_, err := c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	c.SetValue("value")
	val, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "value", val)

	c.ClearValue()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	induced := errors.New("induced")
	c.SetError(induced)
	_, err = c.Get(context.Background())
	assert.Equal(t, induced, err)

	c.SetError(nil)
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	c.Shutdown()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}

func TestConfig_TypedNil(t *testing.T) {
	var key ed25519.PublicKey
	var raw []byte

	for _, value := range []interface{}{key, raw} {
		_, err := NewConfig(value).Get(context.Background())
		assert.Equal(t, config.ErrNoValue, err)
	}

	key = make([]byte, ed25519.PublicKeySize)
	val, err := NewConfig(key).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, key, val)
}
