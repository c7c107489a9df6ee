package wrapper

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/code-nft-staking/pkg/config"
)

var (
	// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
	ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

	// ErrInvalidPublicKey indicates the source value is not a 32 byte base58 key
	ErrInvalidPublicKey = errors.New("config: invalid public key")
)

// typedConfig wraps an untyped config.Config with a default value and a
// conversion from the source's value types.
type typedConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      func(interface{}) (T, error)

	stateMu   sync.RWMutex
	lastValue T
}

func newTypedConfig[T any](override config.Config, defaultValue T, convert func(interface{}) (T, error)) *typedConfig[T] {
	return &typedConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *typedConfig[T]) GetSafe(ctx context.Context) (T, error) {
	override, err := c.override.Get(ctx)
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()
	if err == config.ErrNoValue {
		c.stateMu.Lock()
		c.lastValue = c.defaultValue
		c.stateMu.Unlock()
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	newValue, err := c.convert(override)
	if err != nil {
		return lastValue, err
	}

	c.stateMu.Lock()
	c.lastValue = newValue
	c.stateMu.Unlock()
	return newValue, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *typedConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *typedConfig[T]) Shutdown() {
	c.override.Shutdown()
}

// NewStringConfig returns a new string config utility wrapper
func NewStringConfig(override config.Config, defaultValue string) config.String {
	return newTypedConfig(override, defaultValue, func(v interface{}) (string, error) {
		switch v := v.(type) {
		case []byte:
			return string(v), nil
		case string:
			return v, nil
		default:
			return "", ErrUnsuportedConversion
		}
	})
}

// NewPublicKeyConfig returns a new public key config utility wrapper. Byte and
// string sources hold base58 text, as environment variables do.
func NewPublicKeyConfig(override config.Config, defaultValue ed25519.PublicKey) config.PublicKey {
	return newTypedConfig(override, defaultValue, func(v interface{}) (ed25519.PublicKey, error) {
		var encoded string
		switch v := v.(type) {
		case ed25519.PublicKey:
			if len(v) != ed25519.PublicKeySize {
				return nil, errors.Wrapf(ErrInvalidPublicKey, "length %d", len(v))
			}
			return v, nil
		case []byte:
			encoded = string(v)
		case string:
			encoded = v
		default:
			return nil, ErrUnsuportedConversion
		}

		decoded, err := base58.Decode(encoded)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "%q: %v", encoded, err)
		}
		if len(decoded) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidPublicKey, "%q decodes to %d bytes", encoded, len(decoded))
		}
		return decoded, nil
	})
}
