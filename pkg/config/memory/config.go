package memory

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/code-payments/code-nft-staking/pkg/config"
)

// Config holds a single in-process value. It backs test overrides and
// flag-supplied settings.
type Config struct {
	mu       sync.RWMutex
	value    interface{}
	err      error
	shutdown bool
}

// NewConfig returns a Config holding value. Nil values, including typed nil
// keys and byte slices, leave the config unset.
func NewConfig(value interface{}) *Config {
	c := &Config{}
	c.SetValue(value)
	return c
}

// Get implements config.Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.err != nil:
		return nil, c.err
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements config.Config.Shutdown
func (c *Config) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()
}

func (c *Config) SetValue(value interface{}) {
	c.mu.Lock()
	c.value = unsetIfNil(value)
	c.mu.Unlock()
}

func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// SetError makes Get fail with err until it is called again with nil.
func (c *Config) SetError(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func unsetIfNil(value interface{}) interface{} {
	switch v := value.(type) {
	case ed25519.PublicKey:
		if v == nil {
			return nil
		}
	case []byte:
		if v == nil {
			return nil
		}
	}
	return value
}
