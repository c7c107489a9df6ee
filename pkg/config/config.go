package config

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	// ErrNoValue indicates no value was set for the config
	ErrNoValue = errors.New("config: no value set")

	// ErrShutdown indicates the use of a Config after calling Shutdown
	ErrShutdown = errors.New("config: shutdown")
)

// Config is an interface for getting a configuration value
type Config interface {
	// Get returns the latest config value
	Get(ctx context.Context) (interface{}, error)

	// Shutdown signals the config to stop all underlying resources
	Shutdown()
}

// String provides a string typed config.Config.
type String interface {
	Get(ctx context.Context) string
	GetSafe(ctx context.Context) (string, error)
	Shutdown()
}

// PublicKey provides an ed25519 public key typed config.Config. Text sources
// are base58 encoded.
type PublicKey interface {
	Get(ctx context.Context) ed25519.PublicKey
	GetSafe(ctx context.Context) (ed25519.PublicKey, error)
	Shutdown()
}
