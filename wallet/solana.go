package wallet

import (
	"context"
	"crypto/ed25519"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// SolanaGenerator derives base58 Solana addresses. Seeds use the first 32
// bytes of the BIP-39 seed as the ed25519 seed.
type SolanaGenerator struct {
	secrets SecretStore
}

func NewSolanaGenerator(secrets SecretStore) *SolanaGenerator {
	return &SolanaGenerator{secrets: secrets}
}

func (g *SolanaGenerator) Generate(ctx context.Context, source *Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &GenerationError{Cause: err}
	}

	privateKey, err := g.privateKey(source)
	if err != nil {
		return "", err
	}

	address := privateKey.PublicKey().String()
	if err := storeSecret(g.secrets, address, privateKey.String()); err != nil {
		return "", err
	}
	return address, nil
}

func (g *SolanaGenerator) privateKey(source *Source) (solana.PrivateKey, error) {
	switch {
	case source == nil:
		return solana.NewWallet().PrivateKey, nil

	case source.Kind == SourceSeed:
		seed, err := seedFromMnemonic(source.Secret)
		if err != nil {
			return nil, err
		}
		return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])), nil

	case source.Kind == SourceKey:
		privateKey, err := solana.PrivateKeyFromBase58(strings.TrimSpace(source.Secret))
		if err != nil {
			return nil, generationErr(err, "invalid private key")
		}
		if len(privateKey) != ed25519.PrivateKeySize {
			return nil, generationErr(errors.Errorf("got %d bytes", len(privateKey)), "invalid private key length")
		}
		return privateKey, nil
	}
	return nil, &GenerationError{}
}
