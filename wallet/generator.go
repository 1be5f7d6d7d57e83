package wallet

import (
	"context"
	"strings"

	"github.com/abcfe/abcfe-wallet/config"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

// Generator derives a public address from a credential source. A nil source
// asks for a freshly generated key. Failures are *GenerationError.
type Generator interface {
	Generate(ctx context.Context, source *Source) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, source *Source) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, source *Source) (string, error) {
	return f(ctx, source)
}

// NewGenerator returns the generator for a configured network.
func NewGenerator(network string, secrets SecretStore) (Generator, error) {
	switch network {
	case config.NetworkAbcfe:
		return NewAbcfeGenerator(secrets), nil
	case config.NetworkSolana:
		return NewSolanaGenerator(secrets), nil
	default:
		return nil, errors.Errorf("unknown network %q", network)
	}
}

// seedFromMnemonic checks the phrase against the BIP-39 word list and
// checksum before stretching it into a seed.
func seedFromMnemonic(phrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(strings.Join(strings.Fields(phrase), " "), "")
	if err != nil {
		return nil, generationErr(err, "invalid recovery phrase")
	}
	return seed, nil
}

func storeSecret(secrets SecretStore, address, secret string) error {
	if secrets == nil {
		return nil
	}
	if err := secrets.Put(address, secret); err != nil {
		return generationErr(err, "store key")
	}
	return nil
}
